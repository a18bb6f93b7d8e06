package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/media-sorter/internal/api/utils"
	"github.com/easayliu/media-sorter/internal/application/services"
)

// SorterHandler 整理相关的HTTP处理器
type SorterHandler struct {
	container *services.ServiceContainer
}

// NewSorterHandler 创建整理处理器
func NewSorterHandler(container *services.ServiceContainer) *SorterHandler {
	return &SorterHandler{container: container}
}

// TriggerScan 手动触发一次全量扫描整理
func (h *SorterHandler) TriggerScan(c *gin.Context) {
	run, err := h.container.GetSorterService().ScanAndSort(c.Request.Context())
	if err != nil {
		utils.Error(c, err.Error())
		return
	}
	utils.Success(c, run)
}

// Preview 计算当前监视目录的整理指令，不执行移动
func (h *SorterHandler) Preview(c *gin.Context) {
	instructions, err := h.container.GetSorterService().Preview(c.Request.Context())
	if err != nil {
		utils.Error(c, err.Error())
		return
	}
	utils.Success(c, gin.H{
		"count":        len(instructions),
		"instructions": instructions,
	})
}

// Status 最近一次运行的状态
func (h *SorterHandler) Status(c *gin.Context) {
	run := h.container.GetSorterService().LastRun()
	if run == nil {
		utils.Success(c, gin.H{"last_run": nil})
		return
	}
	utils.Success(c, gin.H{"last_run": run})
}
