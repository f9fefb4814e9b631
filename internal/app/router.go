package app

import (
	"secquest_backend/docs"
	"secquest_backend/internal/config"
	"secquest_backend/internal/middleware"
	"secquest_backend/internal/model"
	"secquest_backend/internal/util"
	"secquest_backend/pkg/monitoring"
	"secquest_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.NoRoute(util.NotFound)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 支付平台回调，使用共享密钥而不是 JWT
	payments := router.Group("/api/payments")
	payments.Use(security.SharedSecret(util.WebhookSecretHeader, cfg.Payment.WebhookSecret))
	{
		payments.POST("/webhook", c.payment.PremiumWebhook)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 内容
	rg.GET("/rooms", c.content.ListRooms)
	rg.GET("/rooms/:id", c.content.GetRoom)
	rg.GET("/labs", c.content.ListLabs)
	rg.GET("/labs/:id", c.content.GetLab)

	// 学习进度
	progress := rg.Group("/progress")
	{
		progress.GET("/stats", c.progress.GetStats)
		progress.POST("/rooms/:roomId/join", c.progress.JoinRoom)
		progress.PUT("/rooms/:roomId/lecture", c.progress.UpdateLecture)
		progress.POST("/rooms/:roomId/exercises/:taskIndex", c.progress.SubmitExercise)
		progress.POST("/rooms/:roomId/quiz", c.progress.SubmitQuiz)
		progress.POST("/rooms/:roomId/complete", c.progress.CompleteRoom)
		progress.POST("/labs/:labId/complete", c.progress.ReplayLab)
		progress.GET("/:kind/:itemId", c.progress.GetProgress)
	}

	// 严格模式：实验只能完成一次
	rg.POST("/labs/:id/complete", c.progress.CompleteLab)

	// 排行榜
	rg.GET("/leaderboard", c.leaderboard.GetLeaderboard)
	rg.GET("/leaderboard/rank", c.leaderboard.GetMyRank)
	rg.GET("/users/:id/rank", c.leaderboard.GetUserRank)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.Admin),
	)
	{
		admin.POST("/rooms", c.content.CreateRoom)
		admin.POST("/labs", c.content.CreateLab)
		admin.POST("/streaks/recalculate", c.admin.RecalculateStreaks)
	}
}
