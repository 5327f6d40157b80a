package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"roboquin-http-service/internal/error/code"
	"roboquin-http-service/internal/error/response"
	"roboquin-http-service/services"
	"roboquin-http-service/services/container"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"100003"`
	Message string      `json:"message" example:"请求参数验证错误"`
	Data    interface{} `json:"data"`
}

// handleServiceError 将服务层错误类别映射为统一响应
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.FailWithMessage(c, code.ErrRecordNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrValidation):
		response.FailWithMessage(c, code.ErrValidation, err.Error(), nil)
	case errors.Is(err, services.ErrQuotaExceeded):
		response.FailWithMessage(c, code.ErrScheduleQuotaExceeded, err.Error(), nil)
	case errors.Is(err, services.ErrAuthorization):
		response.FailWithMessage(c, code.ErrPermissionDenied, err.Error(), nil)
	default:
		response.FailWithMessage(c, code.ErrDatabase, err.Error(), nil)
	}
}
