package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fileutil "github.com/easayliu/media-sorter/pkg/utils/file"
)

// Entry 监视目录下的一个顶层条目
type Entry struct {
	Path  string
	Name  string
	IsDir bool
}

// Scanner 扫描监视目录，发现待整理条目与其中的媒体文件
type Scanner struct {
	videoExts    []string
	subtitleExts []string
}

// NewScanner 创建扫描器，扩展名列表为空时使用默认列表
func NewScanner(videoExts, subtitleExts []string) *Scanner {
	if len(videoExts) == 0 {
		videoExts = fileutil.DefaultVideoExtensions
	}
	if len(subtitleExts) == 0 {
		subtitleExts = fileutil.DefaultSubtitleExtensions
	}
	return &Scanner{
		videoExts:    videoExts,
		subtitleExts: subtitleExts,
	}
}

// ListEntries 列出监视目录的顶层条目
// 目录与散落的视频文件都是待整理条目；点开头的隐藏条目跳过
func (s *Scanner) ListEntries(watchDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(watchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !de.IsDir() && !fileutil.IsVideoFile(name, s.videoExts) {
			continue
		}
		entries = append(entries, Entry{
			Path:  filepath.Join(watchDir, name),
			Name:  name,
			IsDir: de.IsDir(),
		})
	}

	return entries, nil
}

// FindVideoFiles 递归查找目录下的所有视频文件
func (s *Scanner) FindVideoFiles(root string) ([]string, error) {
	return s.findByExtension(root, s.videoExts)
}

// FindSubtitleFiles 递归查找目录下的所有字幕文件
func (s *Scanner) FindSubtitleFiles(root string) ([]string, error) {
	return s.findByExtension(root, s.subtitleExts)
}

func (s *Scanner) findByExtension(root string, exts []string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := fileutil.ExtractExtension(info.Name())
		for _, e := range exts {
			if strings.EqualFold(ext, e) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}
