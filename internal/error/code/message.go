package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "成功",
	ErrUnknown:          "未知错误",
	ErrBind:             "请求参数绑定错误",
	ErrValidation:       "请求参数验证错误",
	ErrTokenInvalid:     "无效的认证令牌",
	ErrPermissionDenied: "没有操作权限",
	ErrTooManyRequests:  "请求频率过高",
	ErrDuplicateRequest: "重复请求，请勿重试",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",
	ErrUserNotClient:         "目标用户不是客户角色",

	// 设备相关错误码
	ErrUnitNotFound:     "设备不存在",
	ErrUnitAlreadyExist: "设备已存在",

	// 日程相关错误码
	ErrScheduleNotFound:      "日程不存在",
	ErrScheduleQuotaExceeded: "本月日程配额已用完",
	ErrScheduleTerminal:      "日程已处于终态，不允许修改状态",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,
	ErrDuplicateRequest: StatusConflict,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrUserNotClient:         StatusBadRequest,

	// 设备相关错误码
	ErrUnitNotFound:     StatusNotFound,
	ErrUnitAlreadyExist: StatusBadRequest,

	// 日程相关错误码
	ErrScheduleNotFound:      StatusNotFound,
	ErrScheduleQuotaExceeded: StatusForbidden,
	ErrScheduleTerminal:      StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 返回错误码对应的消息
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 返回错误码对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
