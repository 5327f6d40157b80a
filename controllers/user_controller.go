package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roboquin-http-service/internal/error/code"
	"roboquin-http-service/internal/error/response"
	"roboquin-http-service/models"
	"roboquin-http-service/services"
	"roboquin-http-service/services/container"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateUser()
	DeleteUser()
	SetManagedClients()
}

// UserController 处理用户目录相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UserRequest 表示创建用户的请求结构
type UserRequest struct {
	Name     string `json:"name" binding:"required" example:"Clara Client"`
	Email    string `json:"email" binding:"required" example:"client@demo.com"`
	Role     string `json:"role" binding:"required" example:"client"` // admin, manager, client
	Password string `json:"password" binding:"required" example:"password"`
}

// ManagedClientsRequest 表示重设经理监管客户集合的请求结构
type ManagedClientsRequest struct {
	ClientIDs []uint `json:"client_ids" example:"[2,3]"`
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "deleteUser":
			controller.DeleteUser()
		case "setManagedClients":
			controller.SetManagedClients()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetUsers 获取所有用户列表
// @Summary      获取用户列表
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.User}
// @Router       /users [get]
func (c *UserController) GetUsers() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)

	users, err := userService.GetAllUsers()
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, users)
}

// 2. GetUser 根据ID获取用户
// @Summary      获取单个用户
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200  {object}  response.Response{data=models.User}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (c *UserController) GetUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的用户ID")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)

	user, err := userService.GetUserByID(uint(id))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// 3. CreateUser 创建新用户
// @Summary      创建用户
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UserRequest true "用户参数"
// @Success      200  {object}  response.Response{data=models.User}
// @Failure      400  {object}  ErrorResponse
// @Router       /users [post]
func (c *UserController) CreateUser() {
	var req UserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     models.UserRole(req.Role),
		Password: req.Password,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)

	if err := userService.CreateUser(user); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// 4. DeleteUser 删除用户
// @Summary      删除用户
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (c *UserController) DeleteUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的用户ID")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)

	if err := userService.DeleteUser(uint(id)); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// 5. SetManagedClients 重设经理监管的客户集合
// @Summary      设置经理监管客户
// @Description  用给定集合整体替换经理当前监管的客户；目标用户必须是客户角色
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "经理ID"
// @Param        request body ManagedClientsRequest true "客户ID集合"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/clients [put]
func (c *UserController) SetManagedClients() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的用户ID")
		return
	}

	var req ManagedClientsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)

	if err := userService.SetManagedClients(uint(id), req.ClientIDs); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
