package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roboquin-http-service/internal/error/code"
	"roboquin-http-service/internal/error/response"
	"roboquin-http-service/middleware"
	"roboquin-http-service/services"
	"roboquin-http-service/services/container"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
	CheckPermission()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@roboquin.local"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginData 表示登录成功后返回的数据
type LoginData struct {
	Token  string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	UserID uint   `json:"user_id" example:"1"`
	Role   string `json:"role" example:"admin"`
	Name   string `json:"name" example:"Alice Admin"`
}

// PermissionData 表示权限探测结果
type PermissionData struct {
	Permission string `json:"permission" example:"view:own-mannequins"`
	Allowed    bool   `json:"allowed" example:"true"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "checkPermission":
			controller.CheckPermission()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. Login 处理用户登录
// @Summary      用户登录
// @Description  校验邮箱和密码，返回携带用户角色的JWT令牌
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录请求参数"
// @Success      200  {object}  response.Response{data=LoginData}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数无效: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)

	user, err := userService.VerifyPassword(req.Email, req.Password)
	if err != nil {
		// 不区分用户不存在和密码错误
		response.Fail(c.Ctx, code.ErrUserPasswordIncorrect, nil)
		return
	}

	token, err := jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, LoginData{
		Token:  token,
		UserID: user.ID,
		Role:   string(user.Role),
		Name:   user.Name,
	})
}

// 2. CheckPermission 探测当前操作者是否持有指定权限
// @Summary      权限探测
// @Description  按操作者角色判断是否持有指定名称的权限
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        permission path string true "权限名称"
// @Success      200  {object}  response.Response{data=PermissionData}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/permissions/{permission} [get]
func (c *JWTController) CheckPermission() {
	actor, ok := middleware.GetActor(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	permission := c.Ctx.Param("permission")
	allowed := services.PolicyFor(actor.Role).HasPermission(actor, permission)

	response.Success(c.Ctx, PermissionData{
		Permission: permission,
		Allowed:    allowed,
	})
}
