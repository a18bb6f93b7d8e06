package services

import (
	"time"

	"github.com/easayliu/media-sorter/internal/application/services/sorting"
	"github.com/easayliu/media-sorter/internal/infrastructure/config"
	"github.com/easayliu/media-sorter/internal/infrastructure/filesystem"
	"github.com/easayliu/media-sorter/internal/infrastructure/tmdb"
	"github.com/easayliu/media-sorter/pkg/logger"
)

// ServiceContainer 应用服务容器 - 集中完成依赖装配
type ServiceContainer struct {
	config *config.Config

	sorterService       *SorterService
	schedulerService    *SchedulerService
	notificationService *NotificationService
}

// NewServiceContainer 创建服务容器
// TMDB 未配置 API key 时标题解析降级为始终使用清洗后的标题
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	container := &ServiceContainer{config: cfg}

	scanner := filesystem.NewScanner(cfg.Sorter.VideoExtensions, cfg.Sorter.SubtitleExtensions)

	var searcher sorting.MetadataSearcher
	tmdbClient := tmdb.NewClient(&cfg.TMDB)
	if tmdbClient.IsConfigured() {
		searcher = NewTMDBSearcher(tmdbClient)
	} else {
		logger.Warn("TMDB API key not configured, titles will not be canonicalized")
	}

	normalizer := sorting.NewNormalizer()
	resolver := sorting.NewResolver(searcher, time.Duration(cfg.TMDB.TimeoutSeconds)*time.Second)
	namer := sorting.NewNamer(
		filesystem.OSProbe{},
		sorting.ConflictPolicy(cfg.Sorter.ConflictPolicy),
		cfg.Sorter.MaxVersionProbes,
	)

	pipeline := sorting.NewPipeline(
		sorting.NewClassifier(normalizer),
		resolver,
		namer,
		sorting.NewMatcher(),
		scanner,
		cfg.Folders.TV,
		cfg.Folders.Movies,
	)

	container.notificationService = NewNotificationService(cfg)
	container.sorterService = NewSorterService(
		cfg,
		scanner,
		pipeline,
		resolver,
		filesystem.NewMover(),
		container.notificationService,
	)
	container.schedulerService = NewSchedulerService(container.sorterService)

	return container, nil
}

// GetSorterService 获取整理服务
func (c *ServiceContainer) GetSorterService() *SorterService {
	return c.sorterService
}

// GetSchedulerService 获取调度服务
func (c *ServiceContainer) GetSchedulerService() *SchedulerService {
	return c.schedulerService
}

// GetNotificationService 获取通知服务
func (c *ServiceContainer) GetNotificationService() *NotificationService {
	return c.notificationService
}

// Shutdown 停止容器内的后台服务
func (c *ServiceContainer) Shutdown() {
	c.schedulerService.Stop()
}
