package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"craftfolio/internal/config"
)

// NewRouter 构建 Gin 路由引擎，仅挂载健康检查；业务路由由 RegisterRoutes 注册。
func NewRouter(_ *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
