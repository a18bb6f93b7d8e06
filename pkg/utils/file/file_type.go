package fileutil

import "strings"

// 默认支持的视频扩展名列表
var DefaultVideoExtensions = []string{
	"mkv", "mp4", "avi", "mov", "wmv", "flv", "m4v", "mpg", "mpeg",
}

// 默认支持的字幕扩展名列表
var DefaultSubtitleExtensions = []string{
	"srt", "ass", "ssa", "sub", "vtt",
}

// IsVideoFile 检查文件是否为视频文件
// filename: 文件名或完整路径
// videoExts: 可选的视频扩展名列表，如果为空则使用默认列表
func IsVideoFile(filename string, videoExts ...[]string) bool {
	exts := DefaultVideoExtensions
	if len(videoExts) > 0 && len(videoExts[0]) > 0 {
		exts = videoExts[0]
	}
	return matchExtension(filename, exts)
}

// IsSubtitleFile 检查文件是否为字幕文件
func IsSubtitleFile(filename string, subtitleExts ...[]string) bool {
	exts := DefaultSubtitleExtensions
	if len(subtitleExts) > 0 && len(subtitleExts[0]) > 0 {
		exts = subtitleExts[0]
	}
	return matchExtension(filename, exts)
}

func matchExtension(filename string, exts []string) bool {
	ext := ExtractExtension(filename)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ExtractExtension 从文件名中提取扩展名（不带点号，小写）
// 例如：
//
//	"video.mp4" -> "mp4"
//	"movie.MKV" -> "mkv"
//	"/path/to/file.AVI" -> "avi"
func ExtractExtension(filename string) string {
	if filename == "" {
		return ""
	}

	idx := strings.LastIndex(filename, ".")
	if idx == -1 || idx == len(filename)-1 {
		return ""
	}

	return strings.ToLower(filename[idx+1:])
}
