package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roboquin-http-service/internal/error/code"
	"roboquin-http-service/internal/error/response"
	"roboquin-http-service/middleware"
	"roboquin-http-service/models"
	"roboquin-http-service/services"
	"roboquin-http-service/services/container"
)

// InterfaceScheduleController 定义日程控制器接口
type InterfaceScheduleController interface {
	GetSchedules()
	GetSchedule()
	CreateSchedule()
	UpdateSchedule()
	DeleteSchedule()
}

// ScheduleController 处理动作日程相关的请求
type ScheduleController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewScheduleController 创建一个新的日程控制器
func NewScheduleController(ctx *gin.Context, container *container.ServiceContainer) *ScheduleController {
	return &ScheduleController{
		Ctx:       ctx,
		Container: container,
	}
}

// ScheduleRequest 表示创建日程的请求结构
type ScheduleRequest struct {
	UnitID     uint   `json:"unit_id" binding:"required" example:"1"`
	PresetID   string `json:"preset_id" binding:"required" example:"welcome"`
	Date       string `json:"date" binding:"required" example:"2024-03-20"`
	Time       string `json:"time" binding:"required" example:"09:00"`
	Recurrence string `json:"recurrence" example:"Daily"` // Once, Daily, Weekdays, Weekly, Monthly
}

// ScheduleUpdateRequest 表示部分更新日程的请求结构，未提供的字段保持原值
type ScheduleUpdateRequest struct {
	PresetID   *string `json:"preset_id" example:"fashion-a"`
	Date       *string `json:"date" example:"2024-03-21"`
	Time       *string `json:"time" example:"14:30"`
	Recurrence *string `json:"recurrence" example:"Weekly"`
	Status     *string `json:"status" example:"cancelled"` // active, completed, cancelled
}

// HandleScheduleFunc 返回一个处理日程请求的Gin处理函数
func HandleScheduleFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewScheduleController(ctx, container)

		switch method {
		case "getSchedules":
			controller.GetSchedules()
		case "getSchedule":
			controller.GetSchedule()
		case "createSchedule":
			controller.CreateSchedule()
		case "updateSchedule":
			controller.UpdateSchedule()
		case "deleteSchedule":
			controller.DeleteSchedule()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetSchedules 获取操作者可见的日程列表
// @Summary      获取日程列表
// @Description  按操作者角色过滤：管理员可见全部，经理可见监管客户设备上的日程，客户仅可见自己设备上的日程
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.Schedule}
// @Failure      401  {object}  ErrorResponse
// @Router       /schedules [get]
func (c *ScheduleController) GetSchedules() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	schedules, err := scheduleService.ListSchedules(actor)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, schedules)
}

// 2. GetSchedule 根据ID获取日程
// @Summary      获取单条日程
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "日程ID"
// @Success      200  {object}  response.Response{data=models.Schedule}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /schedules/{id} [get]
func (c *ScheduleController) GetSchedule() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的日程ID")
		return
	}

	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	schedule, err := scheduleService.GetScheduleByID(actor, uint(id))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, schedule)
}

// 3. CreateSchedule 创建新日程
// @Summary      创建日程
// @Description  在指定设备上创建动作日程；非管理员每个自然月最多创建一条
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ScheduleRequest true "日程参数"
// @Success      200  {object}  response.Response{data=models.Schedule}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /schedules [post]
func (c *ScheduleController) CreateSchedule() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var req ScheduleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	schedule := &models.Schedule{
		UnitID:     req.UnitID,
		PresetID:   req.PresetID,
		Date:       req.Date,
		Time:       req.Time,
		Recurrence: models.RecurrenceType(req.Recurrence),
	}

	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	if err := scheduleService.CreateSchedule(actor, schedule); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, schedule)
}

// 4. UpdateSchedule 部分更新日程
// @Summary      更新日程
// @Description  合并提供的字段，未提供的字段保持原值
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "日程ID"
// @Param        request body ScheduleUpdateRequest true "更新字段"
// @Success      200  {object}  response.Response{data=models.Schedule}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的日程ID")
		return
	}

	var req ScheduleUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	// 只收集请求中出现的字段
	updates := make(map[string]interface{})
	if req.PresetID != nil {
		updates["preset_id"] = *req.PresetID
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Time != nil {
		updates["time"] = *req.Time
	}
	if req.Recurrence != nil {
		updates["recurrence"] = *req.Recurrence
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	schedule, err := scheduleService.UpdateSchedule(actor, uint(id), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, schedule)
}

// 5. DeleteSchedule 删除日程
// @Summary      删除日程
// @Description  永久删除日程；重复删除同一ID返回记录不存在
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "日程ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的日程ID")
		return
	}

	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	if err := scheduleService.DeleteSchedule(actor, uint(id)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
