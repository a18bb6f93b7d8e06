package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/easayliu/media-sorter/internal/application/services/sorting"
	"github.com/easayliu/media-sorter/internal/domain/entities"
	"github.com/easayliu/media-sorter/internal/infrastructure/config"
	"github.com/easayliu/media-sorter/internal/infrastructure/filesystem"
	"github.com/easayliu/media-sorter/pkg/logger"
)

// SorterService 整理服务 - 串起扫描、流水线与迁移执行
//
// processMu 保证任意时刻只有一次整理在进行：周期扫描、监视器回调
// 和手动触发都会竞争同一把锁，目标探测与移动之间不会被并发穿插。
type SorterService struct {
	config          *config.Config
	scanner         *filesystem.Scanner
	pipeline        *sorting.Pipeline
	resolver        *sorting.Resolver
	mover           *filesystem.Mover
	notificationSvc *NotificationService

	processMu sync.Mutex

	mu      sync.RWMutex
	lastRun *entities.SortRun
}

func NewSorterService(
	cfg *config.Config,
	scanner *filesystem.Scanner,
	pipeline *sorting.Pipeline,
	resolver *sorting.Resolver,
	mover *filesystem.Mover,
	notificationSvc *NotificationService,
) *SorterService {
	return &SorterService{
		config:          cfg,
		scanner:         scanner,
		pipeline:        pipeline,
		resolver:        resolver,
		mover:           mover,
		notificationSvc: notificationSvc,
	}
}

// ScanAndSort 全量扫描监视目录并整理所有条目
func (s *SorterService) ScanAndSort(ctx context.Context) (*entities.SortRun, error) {
	s.processMu.Lock()
	defer s.processMu.Unlock()

	run := s.beginRun()
	logger.Info("Starting sort run", "runID", run.ID, "watch", s.config.Folders.Watch)

	// 每次运行重新查询元数据，标题修正能在下次运行生效
	s.resolver.Reset()

	entries, err := s.scanner.ListEntries(s.config.Folders.Watch)
	if err != nil {
		s.finishRun(run, []string{err.Error()})
		return run, fmt.Errorf("scan failed: %w", err)
	}

	var errs []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err().Error())
			s.finishRun(run, errs)
			return run, ctx.Err()
		default:
		}

		moved, err := s.processItem(ctx, entry)
		run.ItemsProcessed++
		run.FilesMoved += moved
		if err != nil {
			logger.Error("Failed to process item", "name", entry.Name, "error", err)
			errs = append(errs, fmt.Sprintf("%s: %v", entry.Name, err))
		}
	}

	s.finishRun(run, errs)
	s.notifyRunFinished(run)

	logger.Info("Sort run finished",
		"runID", run.ID,
		"items", run.ItemsProcessed,
		"moved", run.FilesMoved,
		"errors", len(errs))

	return run, nil
}

// SortItem 整理监视目录下的单个条目，监视器静置回调走这里
func (s *SorterService) SortItem(ctx context.Context, entry filesystem.Entry) error {
	s.processMu.Lock()
	defer s.processMu.Unlock()

	s.resolver.Reset()

	moved, err := s.processItem(ctx, entry)
	if err != nil {
		if s.notificationSvc != nil {
			s.notificationSvc.NotifyError(fmt.Sprintf("整理失败: %s", entry.Name), err)
		}
		return err
	}
	logger.Info("Item sorted", "name", entry.Name, "moved", moved)
	return nil
}

// Preview 计算整理指令但不执行移动
func (s *SorterService) Preview(ctx context.Context) ([]entities.RelocationInstruction, error) {
	s.processMu.Lock()
	defer s.processMu.Unlock()

	s.resolver.Reset()

	entries, err := s.scanner.ListEntries(s.config.Folders.Watch)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	var all []entities.RelocationInstruction
	for _, entry := range entries {
		instructions, err := s.pipeline.Process(ctx, sorting.SourceItem(entry))
		if err != nil {
			logger.Warn("Preview skipped item", "name", entry.Name, "error", err)
			continue
		}
		all = append(all, instructions...)
	}

	return all, nil
}

// LastRun 最近一次运行的记录，从未运行过时返回 nil
func (s *SorterService) LastRun() *entities.SortRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

// processItem 处理单个条目并执行移动，返回移动的文件数
// 调用方必须已持有 processMu
func (s *SorterService) processItem(ctx context.Context, entry filesystem.Entry) (int, error) {
	instructions, err := s.pipeline.Process(ctx, sorting.SourceItem(entry))
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, ins := range instructions {
		if err := s.mover.Move(ins.SourcePath, ins.DestPath); err != nil {
			return moved, fmt.Errorf("failed to move %s: %w", ins.SourcePath, err)
		}
		logger.Info("File relocated",
			"kind", string(ins.Kind),
			"src", ins.SourcePath,
			"dest", ins.DestPath)
		moved++
	}

	// 条目是目录时清理搬空后留下的空壳
	if entry.IsDir && moved > 0 {
		s.mover.CleanupEmptyDirs(entry.Path)
	}

	return moved, nil
}

func (s *SorterService) beginRun() *entities.SortRun {
	run := &entities.SortRun{
		ID:        uuid.New().String(),
		Status:    entities.RunStatusRunning,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.lastRun = run
	s.mu.Unlock()

	return run
}

func (s *SorterService) finishRun(run *entities.SortRun, errs []string) {
	now := time.Now()
	run.FinishedAt = &now
	run.Errors = errs
	if len(errs) > 0 {
		run.Status = entities.RunStatusError
	} else {
		run.Status = entities.RunStatusSuccess
	}
}

func (s *SorterService) notifyRunFinished(run *entities.SortRun) {
	if s.notificationSvc == nil {
		return
	}
	// 没有动作也没有错误的空跑不打扰用户
	if run.FilesMoved == 0 && len(run.Errors) == 0 {
		return
	}
	s.notificationSvc.NotifySortRunFinished(run)
}
