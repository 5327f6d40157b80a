package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"roboquin-http-service/internal/error/code"
	"roboquin-http-service/internal/error/response"
	"roboquin-http-service/models"
	"roboquin-http-service/services"
)

const actorContextKey = "actor"

var (
	jwtService  services.InterfaceJWTService
	userService services.InterfaceUserService
)

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(jwt services.InterfaceJWTService, users services.InterfaceUserService) {
	jwtService = jwt
	userService = users
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// AuthenticateActor 验证令牌并解析操作者上下文。
// 经理的监管客户集合从目录实时加载，令牌中只携带用户ID和角色
func AuthenticateActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "缺少 Authorization 请求头", nil)
			c.Abort()
			return
		}

		// 提取并校验token
		tokenString := extractToken(authHeader)
		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "无效的令牌: "+err.Error(), nil)
			c.Abort()
			return
		}

		// 加载操作者上下文（角色以目录中的当前值为准）
		actor, err := userService.GetActorContext(claims.UserID)
		if err != nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "令牌对应的用户不存在", nil)
			c.Abort()
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RequireRoles 限制路由只允许指定角色访问，必须位于 AuthenticateActor 之后
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c)
		c.Abort()
	}
}

// GetActor 从请求上下文中取出操作者
func GetActor(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := value.(services.Actor)
	return actor, ok
}
