package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/easayliu/media-sorter/pkg/logger"
)

// Watcher 监视下载落地目录的新条目
// 新建条目进入待处理集合，静置 settle 时间后才回调处理，
// 避免在下载器仍在写入时就开始移动文件。
type Watcher struct {
	watchDir string
	settle   time.Duration
	onReady  func(path string)

	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	pending map[string]time.Time // 条目路径 -> 首次发现时间
	done    chan struct{}
	wg      sync.WaitGroup
}

// New 创建监视器，onReady 在条目静置结束后被调用
func New(watchDir string, settle time.Duration, onReady func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watchDir: watchDir,
		settle:   settle,
		onReady:  onReady,
		fsw:      fsw,
		pending:  make(map[string]time.Time),
		done:     make(chan struct{}),
	}, nil
}

// Start 开始监视，非阻塞
func (w *Watcher) Start() error {
	if err := w.fsw.Add(w.watchDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.watchDir, err)
	}

	logger.Info("Watching folder for new media", "dir", w.watchDir, "settle", w.settle.String())

	w.wg.Add(2)
	go w.eventLoop()
	go w.flushLoop()

	return nil
}

// Stop 停止监视并等待内部协程退出
func (w *Watcher) Stop() {
	close(w.done)
	w.fsw.Close()
	w.wg.Wait()
}

// PendingCount 当前待静置的条目数，用于状态上报
func (w *Watcher) PendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case event.Has(fsnotify.Create):
		if _, exists := w.pending[event.Name]; !exists {
			logger.Info("New item detected", "name", name)
		}
		w.pending[event.Name] = time.Now()
	case event.Has(fsnotify.Write):
		// 仍在写入，重置静置计时
		if _, exists := w.pending[event.Name]; exists {
			w.pending[event.Name] = time.Now()
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
	}
}

func (w *Watcher) flushLoop() {
	defer w.wg.Done()

	interval := w.settle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) flushSettled() {
	now := time.Now()

	w.mu.Lock()
	var ready []string
	for path, seen := range w.pending {
		if now.Sub(seen) >= w.settle {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		logger.Debug("Item settled, processing", "path", path)
		w.onReady(path)
	}
}
