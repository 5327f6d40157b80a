package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"roboquin-http-service/config"
	"roboquin-http-service/controllers"
	_ "roboquin-http-service/docs"
	"roboquin-http-service/middleware"
	"roboquin-http-service/models"
	"roboquin-http-service/services"
	"roboquin-http-service/services/container"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With, Idempotency-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 为每个请求标记唯一ID
	r.Use(middleware.RequestID())
	// 按IP限流
	r.Use(middleware.RateLimiter())

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化认证中间件
	middleware.InitAuthMiddleware(
		serviceContainer.GetService("jwt").(services.InterfaceJWTService),
		serviceContainer.GetService("user").(services.InterfaceUserService),
	)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	redisService := container.GetService("redis").(services.InterfaceRedisService)

	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateActor())
	// 写操作携带 Idempotency-Key 时拒绝基础设施层的透明重试
	auth.Use(middleware.IdempotencyGuard(redisService))

	// 权限探测路由
	auth.GET("/auth/permissions/:permission", controllers.HandleJWTFunc(container, "checkPermission"))

	// 日程路由 - 所有角色可访问，可见性和配额由服务层裁决
	auth.Group("/schedules").GET("", controllers.HandleScheduleFunc(container, "getSchedules"))
	auth.Group("/schedules").GET("/:id", controllers.HandleScheduleFunc(container, "getSchedule"))
	auth.Group("/schedules").POST("", controllers.HandleScheduleFunc(container, "createSchedule"))
	auth.Group("/schedules").PUT("/:id", controllers.HandleScheduleFunc(container, "updateSchedule"))
	auth.Group("/schedules").DELETE("/:id", controllers.HandleScheduleFunc(container, "deleteSchedule"))

	// 设备路由 - 列表和详情所有角色可访问
	auth.Group("/units").GET("", controllers.HandleUnitFunc(container, "getUnits"))
	auth.Group("/units").GET("/:id", controllers.HandleUnitFunc(container, "getUnit"))

	// 设备登记和信息维护仅管理员可用
	adminOnly := auth.Group("/")
	adminOnly.Use(middleware.RequireRoles(models.RoleAdmin))
	adminOnly.Group("/units").POST("", controllers.HandleUnitFunc(container, "createUnit"))
	adminOnly.Group("/units").PUT("/:id", controllers.HandleUnitFunc(container, "updateUnit"))

	// 用户目录路由仅管理员可用
	adminOnly.Group("/users").GET("", controllers.HandleUserFunc(container, "getUsers"))
	adminOnly.Group("/users").GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	adminOnly.Group("/users").POST("", controllers.HandleUserFunc(container, "createUser"))
	adminOnly.Group("/users").DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))
	adminOnly.Group("/users").PUT("/:id/clients", controllers.HandleUserFunc(container, "setManagedClients"))

	// 设备分配路由 - 管理员和经理可用
	assignment := auth.Group("/")
	assignment.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	assignment.Group("/units").PUT("/:id/assignment", controllers.HandleUnitFunc(container, "assignUnit"))
	assignment.Group("/units").DELETE("/:id/assignment", controllers.HandleUnitFunc(container, "unassignUnit"))
}
