package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/easayliu/media-sorter/pkg/logger"
)

// SchedulerService 周期全量扫描调度器
// 监视器可能漏掉服务停机期间落地的条目，周期扫描兜底
type SchedulerService struct {
	cron      *cron.Cron
	sorterSvc *SorterService
	mu        sync.Mutex
	running   bool
}

func NewSchedulerService(sorterSvc *SorterService) *SchedulerService {
	return &SchedulerService{
		cron:      cron.New(), // 标准5字段格式（分 时 日 月 周），也接受 @every 描述符
		sorterSvc: sorterSvc,
	}
}

// Start 按配置的cron表达式注册周期扫描并启动调度器
func (s *SchedulerService) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.sorterSvc.ScanAndSort(context.Background()); err != nil {
			logger.Error("Scheduled sort run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sort run: %w", err)
	}

	s.cron.Start()
	s.running = true
	logger.Info("Scheduler service started", "cron", spec)

	return nil
}

// Stop 停止调度器，等待进行中的任务结束
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		logger.Info("Scheduler service stopped")
	}
}
