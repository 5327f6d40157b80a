package services

import "errors"

// 服务层统一的错误类别，控制器通过 errors.Is 将其映射为响应错误码。
// 所有错误都在写入任何数据之前被检出，单次操作要么完整生效要么毫无副作用。
var (
	// ErrNotFound 引用的日程、设备或用户不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrValidation 必填字段缺失或格式不合法
	ErrValidation = errors.New("请求参数无效")
	// ErrQuotaExceeded 非管理员在当前自然月内已持有日程
	ErrQuotaExceeded = errors.New("本月日程配额已用完")
	// ErrAuthorization 操作者没有查看或管理目标资源的权限
	ErrAuthorization = errors.New("没有操作权限")
)
