package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/media-sorter/internal/api/utils"
)

// HealthCheck 健康检查
func HealthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
