package entities

import (
	"time"
)

// RunStatus 整理运行状态枚举
type RunStatus string

const (
	RunStatusRunning RunStatus = "running" // 运行中
	RunStatusSuccess RunStatus = "success" // 执行成功
	RunStatusError   RunStatus = "error"   // 存在失败项
)

// SortRun 一次扫描整理运行的记录
type SortRun struct {
	ID             string     `json:"id"`              // 运行ID
	Status         RunStatus  `json:"status"`          // 运行状态
	ItemsProcessed int        `json:"items_processed"` // 处理的条目数
	FilesMoved     int        `json:"files_moved"`     // 移动的文件数
	Errors         []string   `json:"errors"`          // 错误信息
	StartedAt      time.Time  `json:"started_at"`      // 开始时间
	FinishedAt     *time.Time `json:"finished_at"`     // 结束时间
}
