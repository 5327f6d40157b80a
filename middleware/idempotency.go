package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roboquin-http-service/config"
	"roboquin-http-service/internal/error/code"
	"roboquin-http-service/internal/error/response"
	"roboquin-http-service/services"
)

const idempotencyKeyHeader = "Idempotency-Key"

// 幂等键的保留时长，窗口内携带相同键的重试一律拒绝
const idempotencyKeyTTL = 24 * time.Hour

// IdempotencyGuard 保护写操作不被基础设施透明重试：
// 请求携带 Idempotency-Key 时，键只允许被占用一次，
// 重复出现视为重试并直接拒绝，避免重复创建或绕过配额。
// 未携带键的请求不受影响；Redis 不可用时放行并记录告警
func IdempotencyGuard(redisService services.InterfaceRedisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyKeyHeader)
		if key == "" || redisService == nil {
			c.Next()
			return
		}

		reserved, err := redisService.ReserveIdempotencyKey(key, idempotencyKeyTTL)
		if err != nil {
			config.Warning("幂等键检查失败，放行请求: %v", err)
			c.Next()
			return
		}

		if !reserved {
			response.Fail(c, code.ErrDuplicateRequest, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
