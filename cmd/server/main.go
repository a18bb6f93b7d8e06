package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/media-sorter/internal/api/routes"
	"github.com/easayliu/media-sorter/internal/application/services"
	"github.com/easayliu/media-sorter/internal/infrastructure/config"
	"github.com/easayliu/media-sorter/internal/infrastructure/filesystem"
	"github.com/easayliu/media-sorter/internal/infrastructure/watcher"
	"github.com/easayliu/media-sorter/pkg/logger"
	fileutil "github.com/easayliu/media-sorter/pkg/utils/file"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服务容器
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}

	sorterSvc := container.GetSorterService()

	// 启动时先做一次全量扫描，接住停机期间落地的条目
	if _, err := sorterSvc.ScanAndSort(context.Background()); err != nil {
		logger.Error("Initial scan failed", "error", err)
	}

	// 启动目录监视，条目静置后单独整理
	w, err := watcher.New(
		cfg.Folders.Watch,
		time.Duration(cfg.Sorter.SettleSeconds)*time.Second,
		func(path string) {
			entry, err := entryFromPath(path)
			if err != nil {
				logger.Warn("Settled item vanished before processing", "path", path)
				return
			}
			if !entry.IsDir && !fileutil.IsVideoFile(entry.Name, cfg.Sorter.VideoExtensions) {
				logger.Debug("Ignoring non-video loose file", "name", entry.Name)
				return
			}
			if err := sorterSvc.SortItem(context.Background(), entry); err != nil {
				logger.Error("Failed to sort settled item", "path", path, "error", err)
			}
		},
	)
	if err != nil {
		log.Fatal("Failed to create watcher:", err)
	}
	if err := w.Start(); err != nil {
		log.Fatal("Failed to start watcher:", err)
	}

	// 启动周期兜底扫描
	if err := container.GetSchedulerService().Start(cfg.Sorter.ScanCron); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}

	// 初始化路由
	router := gin.Default()
	routes.NewRoutesConfig(container).SetupRoutes(router)

	// 设置信号处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Starting server", "address", addr)
		if err := router.Run(addr); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// 等待退出信号
	<-quit
	logger.Info("Shutting down server...")

	w.Stop()
	container.Shutdown()

	logger.Info("Server stopped")
}

// entryFromPath 把监视器给出的路径还原成扫描条目
func entryFromPath(path string) (filesystem.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return filesystem.Entry{}, err
	}
	return filesystem.Entry{
		Path:  path,
		Name:  info.Name(),
		IsDir: info.IsDir(),
	}, nil
}
