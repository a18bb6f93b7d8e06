package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/easayliu/media-sorter/internal/domain/entities"
	"github.com/easayliu/media-sorter/internal/infrastructure/config"
	"github.com/easayliu/media-sorter/internal/infrastructure/telegram"
	"github.com/easayliu/media-sorter/pkg/logger"
)

type NotificationService struct {
	telegramClient *telegram.Client
	config         *config.Config
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient = telegram.NewClient(&cfg.Telegram)
	}

	return &NotificationService{
		telegramClient: telegramClient,
		config:         cfg,
	}
}

// NotifySortRunFinished 运行结束后发送汇总通知
func (s *NotificationService) NotifySortRunFinished(run *entities.SortRun) {
	if s.telegramClient == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "处理条目: %d\n移动文件: %d", run.ItemsProcessed, run.FilesMoved)
	if len(run.Errors) > 0 {
		fmt.Fprintf(&b, "\n失败: %d", len(run.Errors))
		for _, e := range run.Errors {
			b.WriteString("\n- ")
			b.WriteString(e)
		}
	}

	title := "媒体整理完成"
	if run.Status == entities.RunStatusError {
		title = "媒体整理存在失败项"
	}

	msg := &telegram.NotificationMessage{
		Type:      "sort_run_finished",
		Title:     title,
		Content:   b.String(),
		Timestamp: time.Now(),
	}

	if err := s.telegramClient.SendNotification(msg); err != nil {
		logger.Error("Failed to send sort run notification", "error", err, "runID", run.ID)
	}
}

// NotifyError 发送独立的错误告警
func (s *NotificationService) NotifyError(title string, err error) {
	if s.telegramClient == nil {
		return
	}

	msg := &telegram.NotificationMessage{
		Type:      "error",
		Title:     title,
		Content:   err.Error(),
		Timestamp: time.Now(),
	}

	if sendErr := s.telegramClient.SendNotification(msg); sendErr != nil {
		logger.Error("Failed to send error notification", "error", sendErr)
	}
}
