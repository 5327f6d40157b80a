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

// InterfaceUnitController 定义设备控制器接口
type InterfaceUnitController interface {
	GetUnits()
	GetUnit()
	CreateUnit()
	UpdateUnit()
	AssignUnit()
	UnassignUnit()
}

// UnitController 处理人台设备相关的请求
type UnitController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUnitController 创建一个新的设备控制器
func NewUnitController(ctx *gin.Context, container *container.ServiceContainer) *UnitController {
	return &UnitController{
		Ctx:       ctx,
		Container: container,
	}
}

// UnitRequest 表示登记设备的请求结构
type UnitRequest struct {
	Name         string `json:"name" binding:"required" example:"Mannequin 1"`
	SerialNumber string `json:"serial_number" binding:"required" example:"MQ-001"`
	Status       string `json:"status" example:"online"` // online, offline, maintenance
	Store        string `json:"store" example:"Fashion Store A"`
	Location     string `json:"location" example:"Floor 1"`
}

// UnitUpdateRequest 表示更新设备基础信息的请求结构
type UnitUpdateRequest struct {
	Name     *string `json:"name" example:"Mannequin 1"`
	Status   *string `json:"status" example:"maintenance"`
	Store    *string `json:"store" example:"Fashion Store B"`
	Location *string `json:"location" example:"Floor 2"`
}

// AssignUnitRequest 表示设备分配请求；client_id 为 null 表示取消分配
type AssignUnitRequest struct {
	ClientID *uint `json:"client_id" example:"3"`
}

// HandleUnitFunc 返回一个处理设备请求的Gin处理函数
func HandleUnitFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUnitController(ctx, container)

		switch method {
		case "getUnits":
			controller.GetUnits()
		case "getUnit":
			controller.GetUnit()
		case "createUnit":
			controller.CreateUnit()
		case "updateUnit":
			controller.UpdateUnit()
		case "assignUnit":
			controller.AssignUnit()
		case "unassignUnit":
			controller.UnassignUnit()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetUnits 获取操作者可见的设备列表
// @Summary      获取设备列表
// @Description  按操作者角色过滤：管理员可见全部，经理可见监管客户名下设备，客户仅可见分配给自己的设备
// @Tags         unit
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.Unit}
// @Failure      401  {object}  ErrorResponse
// @Router       /units [get]
func (c *UnitController) GetUnits() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)

	units, err := unitService.GetVisibleUnits(actor)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, units)
}

// 2. GetUnit 根据ID获取设备
// @Summary      获取单台设备
// @Tags         unit
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "设备ID"
// @Success      200  {object}  response.Response{data=models.Unit}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /units/{id} [get]
func (c *UnitController) GetUnit() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)

	unit, err := unitService.GetUnitByID(uint(id))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	if !services.PolicyFor(actor.Role).CanView(actor, unit) {
		response.Forbidden(c.Ctx)
		return
	}

	response.Success(c.Ctx, unit)
}

// 3. CreateUnit 登记新设备
// @Summary      登记设备
// @Description  仅管理员可用；设备登记属于带外流程，日程核心不会创建设备
// @Tags         unit
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UnitRequest true "设备参数"
// @Success      200  {object}  response.Response{data=models.Unit}
// @Failure      400  {object}  ErrorResponse
// @Router       /units [post]
func (c *UnitController) CreateUnit() {
	var req UnitRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	unit := &models.Unit{
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Status:       models.UnitStatus(req.Status),
		Store:        req.Store,
		Location:     req.Location,
	}

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)

	if err := unitService.CreateUnit(unit); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, unit)
}

// 4. UpdateUnit 更新设备基础信息
// @Summary      更新设备
// @Description  仅管理员可用；分配关系不能通过该接口变更
// @Tags         unit
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "设备ID"
// @Param        request body UnitUpdateRequest true "更新字段"
// @Success      200  {object}  response.Response{data=models.Unit}
// @Failure      404  {object}  ErrorResponse
// @Router       /units/{id} [put]
func (c *UnitController) UpdateUnit() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	var req UnitUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Store != nil {
		updates["store"] = *req.Store
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)

	unit, err := unitService.UpdateUnit(uint(id), updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, unit)
}

// 5. AssignUnit 将设备分配给客户或取消分配
// @Summary      分配设备
// @Description  将设备分配给客户角色的用户；client_id 为 null 表示取消分配
// @Tags         unit
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "设备ID"
// @Param        request body AssignUnitRequest true "分配参数"
// @Success      200  {object}  response.Response{data=models.Unit}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /units/{id}/assignment [put]
func (c *UnitController) AssignUnit() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	var req AssignUnitRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	assignmentService := c.Container.GetService("assignment").(services.InterfaceAssignmentService)

	unit, err := assignmentService.AssignUnit(uint(id), req.ClientID)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, unit)
}

// 6. UnassignUnit 取消设备的客户分配
// @Summary      取消分配
// @Tags         unit
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "设备ID"
// @Success      200  {object}  response.Response{data=models.Unit}
// @Failure      404  {object}  ErrorResponse
// @Router       /units/{id}/assignment [delete]
func (c *UnitController) UnassignUnit() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	assignmentService := c.Container.GetService("assignment").(services.InterfaceAssignmentService)

	unit, err := assignmentService.UnassignUnit(uint(id))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, unit)
}
