package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"craftfolio/internal/ai"
	"craftfolio/internal/api/middleware"
	"craftfolio/internal/auth"
	"craftfolio/internal/config"
	"craftfolio/internal/share"
	"craftfolio/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.Service,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	aiClient ai.Client,
) {
	shareSvc := share.NewService(db)
	resumeHandler := NewResumeHandler(db, asynqClient, storageClient, shareSvc, cfg.Resume.MaxPerUser)
	shareHandler := NewShareHandler(db, shareSvc, cfg.Share.BaseURL)
	authHandler := NewAuthHandler(db, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, cfg.Auth.LoginLockTTL())
	aiHandler := NewAIHandler(aiClient, redisClient, logger, cfg.AI.RateLimitPerMinute)
	templateHandler := NewTemplateHandler()
	wsHandler := NewWsHandler(redisClient, authService, logger, nil)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)
		v1.GET("/templates", templateHandler.ListTemplates)
		v1.GET("/shared/:token", shareHandler.ViewShared)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.GET("/:id/preview", resumeHandler.PreviewResume)
			resumeGroup.GET("/:id/export", resumeHandler.ExportResume)
			resumeGroup.POST("/:id/export/pdf", resumeHandler.DownloadResume)
			resumeGroup.GET("/:id/export/download", resumeHandler.GetDownloadLink)
			resumeGroup.POST("/:id/share", shareHandler.CreateShare)
			resumeGroup.DELETE("/:id/share", shareHandler.RevokeShare)
		}

		aiGroup := v1.Group("/ai")
		aiGroup.Use(authMiddleware)
		{
			aiGroup.POST("/enhance", aiHandler.Enhance)
			aiGroup.POST("/generate-bullets", aiHandler.GenerateBullets)
			aiGroup.POST("/tailor-resume", aiHandler.TailorResume)
		}
	}
}
