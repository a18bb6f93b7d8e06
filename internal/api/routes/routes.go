package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/media-sorter/internal/api/handlers"
	"github.com/easayliu/media-sorter/internal/application/services"
)

// RoutesConfig 路由配置
type RoutesConfig struct {
	container *services.ServiceContainer
}

// NewRoutesConfig 创建路由配置
func NewRoutesConfig(container *services.ServiceContainer) *RoutesConfig {
	return &RoutesConfig{container: container}
}

// SetupRoutes 设置路由
func (rc *RoutesConfig) SetupRoutes(router *gin.Engine) {
	sorterHandler := handlers.NewSorterHandler(rc.container)

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		api.POST("/scan", sorterHandler.TriggerScan)
		api.POST("/preview", sorterHandler.Preview)
		api.GET("/status", sorterHandler.Status)
	}
}
