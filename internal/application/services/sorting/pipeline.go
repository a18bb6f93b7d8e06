package sorting

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/easayliu/media-sorter/internal/domain/entities"
	"github.com/easayliu/media-sorter/internal/domain/valueobjects"
	"github.com/easayliu/media-sorter/internal/infrastructure/filesystem"
	"github.com/easayliu/media-sorter/pkg/logger"
)

// 文件名中的非法字符替换表，去掉路径分隔与 Windows 保留字符
var filenameSanitizer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SourceItem 待整理的条目：监视目录下的一个子目录或散落的视频文件
type SourceItem struct {
	Path  string
	Name  string
	IsDir bool
}

// Pipeline 整理流水线
// 对单个条目完成 分类 -> 标题解析 -> 目标命名 -> 字幕关联，
// 只产出迁移指令，不触碰文件系统（目标存在性探测除外）。
type Pipeline struct {
	classifier *Classifier
	resolver   *Resolver
	namer      *Namer
	matcher    *Matcher
	scanner    *filesystem.Scanner
	tvDir      string
	moviesDir  string
}

// NewPipeline 创建整理流水线
func NewPipeline(
	classifier *Classifier,
	resolver *Resolver,
	namer *Namer,
	matcher *Matcher,
	scanner *filesystem.Scanner,
	tvDir, moviesDir string,
) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		resolver:   resolver,
		namer:      namer,
		matcher:    matcher,
		scanner:    scanner,
		tvDir:      tvDir,
		moviesDir:  moviesDir,
	}
}

// claimProbe 在底层探测之上叠加本次处理内已分配的目标路径，
// 保证同一批指令不会两次指向同一个目标文件
type claimProbe struct {
	probe   filesystem.Probe
	claimed map[string]struct{}
}

func newClaimProbe(probe filesystem.Probe) *claimProbe {
	return &claimProbe{
		probe:   probe,
		claimed: make(map[string]struct{}),
	}
}

func (p *claimProbe) Exists(path string) bool {
	if _, ok := p.claimed[path]; ok {
		return true
	}
	return p.probe.Exists(path)
}

func (p *claimProbe) claim(path string) {
	p.claimed[path] = struct{}{}
}

// Process 处理一个待整理条目，产出迁移指令
// 分类依据条目名本身；条目为目录时递归收集其中的视频与字幕。
// 命名冲突按策略处理：skip 的文件只是不出现在指令里，
// 版本探测耗尽等硬错误使整个条目失败。
func (p *Pipeline) Process(ctx context.Context, item SourceItem) ([]entities.RelocationInstruction, error) {
	identity := p.classifier.Classify(item.Name)
	logger.Debug("Classified source item", "name", item.Name, "identity", identity.String())

	videos, err := p.collectVideos(item)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		logger.Info("No video files found in item, skipping", "name", item.Name)
		return nil, nil
	}

	destDir, baseName := p.destination(ctx, identity)

	claims := newClaimProbe(p.namer.probe)
	namer := p.namer.WithProbe(claims)

	var instructions []entities.RelocationInstruction
	videoDests := make(map[string]string) // 视频文件名 -> 目标路径

	for _, video := range videos {
		resolution := p.classifier.DetectResolution(filepath.Base(video))
		if !resolution.IsKnown() {
			resolution = p.classifier.DetectResolution(item.Name)
		}

		ext := strings.ToLower(filepath.Ext(video))
		destPath, err := namer.UniquePath(destDir, baseName, ext, resolution)
		if err != nil {
			if errors.Is(err, ErrSkipExisting) {
				logger.Info("Destination exists, skipping file", "source", video)
				continue
			}
			return nil, fmt.Errorf("failed to name destination for %s: %w", video, err)
		}

		claims.claim(destPath)
		videoDests[filepath.Base(video)] = destPath
		instructions = append(instructions, entities.RelocationInstruction{
			SourcePath: video,
			DestPath:   destPath,
			Kind:       entities.FileKindVideo,
		})
	}

	if item.IsDir {
		subs, err := p.matchSubtitles(item.Path, videoDests, claims)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, subs...)
	}

	return instructions, nil
}

// collectVideos 收集条目内的视频文件，散落文件即条目本身
func (p *Pipeline) collectVideos(item SourceItem) ([]string, error) {
	if !item.IsDir {
		return []string{item.Path}, nil
	}
	return p.scanner.FindVideoFiles(item.Path)
}

// destination 计算目标目录与基础文件名
// 剧集: {tv}/{剧名}/Season {季号}/，文件名 "{剧名} - S##E##"
// 电影: {movies}/{片名 (年份)}/，文件名即片名
func (p *Pipeline) destination(ctx context.Context, identity valueobjects.MediaIdentity) (destDir, baseName string) {
	if identity.IsEpisode() {
		canonical := p.resolver.Resolve(ctx, identity.ShowTitle, valueobjects.MediaTypeTV)
		display := SanitizeFilename(canonical.Title)
		destDir = filepath.Join(p.tvDir, display, fmt.Sprintf("Season %02d", identity.Season))
		baseName = fmt.Sprintf("%s - S%02dE%02d", display, identity.Season, identity.Episode)
		return destDir, baseName
	}

	canonical := p.resolver.Resolve(ctx, identity.Title, valueobjects.MediaTypeMovie)
	display := SanitizeFilename(canonical.Display())
	destDir = filepath.Join(p.moviesDir, display)
	baseName = display
	return destDir, baseName
}

// matchSubtitles 为目录内的字幕文件生成迁移指令
// 字幕跟随其匹配视频的目标名，附加语言与变体标记；未匹配的留在原地
func (p *Pipeline) matchSubtitles(dir string, videoDests map[string]string, claims *claimProbe) ([]entities.RelocationInstruction, error) {
	subtitles, err := p.scanner.FindSubtitleFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(subtitles) == 0 {
		return nil, nil
	}

	videoNames := make([]string, 0, len(videoDests))
	for name := range videoDests {
		videoNames = append(videoNames, name)
	}

	var instructions []entities.RelocationInstruction
	for _, sub := range subtitles {
		subName := filepath.Base(sub)
		video, ok := p.matcher.Match(subName, videoNames)
		if !ok {
			logger.Info("No matching video for subtitle, leaving in place", "subtitle", subName)
			continue
		}

		destPath := p.subtitleDestPath(subName, videoDests[video])
		if claims.Exists(destPath) {
			logger.Info("Subtitle destination exists, leaving in place", "subtitle", subName)
			continue
		}

		claims.claim(destPath)
		instructions = append(instructions, entities.RelocationInstruction{
			SourcePath: sub,
			DestPath:   destPath,
			Kind:       entities.FileKindSubtitle,
		})
	}

	return instructions, nil
}

// subtitleDestPath 由匹配视频的目标路径派生字幕目标路径
// 形如 {视频名}.{语言}.{变体}{字幕扩展名}
func (p *Pipeline) subtitleDestPath(subtitleName, videoDestPath string) string {
	tag := p.matcher.DetectTag(subtitleName)

	name := strings.TrimSuffix(videoDestPath, filepath.Ext(videoDestPath))
	if tag.Language != "" {
		name += "." + tag.Language
	}
	if tag.Forced {
		name += ".forced"
	}
	if tag.SDH {
		name += ".sdh"
	}
	return name + strings.ToLower(filepath.Ext(subtitleName))
}

// SanitizeFilename 去除文件名中的非法字符并修剪首尾的点与空格
func SanitizeFilename(name string) string {
	cleaned := filenameSanitizer.Replace(name)
	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return "Unknown"
	}
	return cleaned
}
