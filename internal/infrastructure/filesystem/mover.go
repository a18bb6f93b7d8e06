package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/easayliu/media-sorter/pkg/logger"
)

// Mover 迁移执行器 - 负责实际的文件移动与源目录清理
type Mover struct{}

// NewMover 创建迁移执行器
func NewMover() *Mover {
	return &Mover{}
}

// Move 将文件移动到目标路径，必要时创建目标目录
// 跨设备移动时降级为复制+删除
func (m *Mover) Move(srcPath, destPath string) error {
	logger.Debug("Moving file", "src", srcPath, "dest", destPath)

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := os.Rename(srcPath, destPath); err != nil {
		// rename 失败多为跨文件系统，降级为复制
		if copyErr := m.copyAndRemove(srcPath, destPath); copyErr != nil {
			return fmt.Errorf("failed to move file: %w", copyErr)
		}
	}

	logger.Debug("File moved successfully", "src", srcPath, "dest", destPath)
	return nil
}

func (m *Mover) copyAndRemove(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(destPath)
		return fmt.Errorf("failed to copy: %w", err)
	}

	if err := dest.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to flush destination: %w", err)
	}

	if err := os.Remove(srcPath); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}

	return nil
}

// CleanupEmptyDirs 自底向上删除空目录，root 自身为空时也会删除
// 清理失败只记录日志，不影响整理结果
func (m *Mover) CleanupEmptyDirs(root string) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return
	}

	var dirs []string
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})

	// 深层目录优先
	sort.Slice(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			logger.Warn("Failed to remove empty directory", "dir", dir, "error", err)
			continue
		}
		logger.Info("Removed empty directory", "dir", dir)
	}
}
