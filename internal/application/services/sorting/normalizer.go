package sorting

import (
	"path/filepath"
	"regexp"
	"strings"
)

// 垃圾词模式，按固定顺序应用：先去掉括号段，再去质量/来源/编码/音频/发布组词。
// 后面的规则假定前面已完成清理，顺序不可调整。
var junkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[.*?\]`), // 方括号段
	regexp.MustCompile(`\(.*?\)`), // 圆括号段
	regexp.MustCompile(`(?i)1080p`),
	regexp.MustCompile(`(?i)720p`),
	regexp.MustCompile(`(?i)2160p`),
	regexp.MustCompile(`(?i)4K`),
	regexp.MustCompile(`(?i)BluRay`),
	regexp.MustCompile(`(?i)BRRip`),
	regexp.MustCompile(`(?i)WEB-DL`),
	regexp.MustCompile(`(?i)WEBRip`),
	regexp.MustCompile(`(?i)HDTV`),
	regexp.MustCompile(`(?i)x264`),
	regexp.MustCompile(`(?i)x265`),
	regexp.MustCompile(`(?i)H\.264`),
	regexp.MustCompile(`(?i)HEVC`),
	regexp.MustCompile(`(?i)AAC`),
	regexp.MustCompile(`(?i)AC3`),
	regexp.MustCompile(`(?i)DTS`),
	regexp.MustCompile(`(?i)YIFY`),
	regexp.MustCompile(`(?i)RARBG`),
	regexp.MustCompile(`(?i)ETRG`),
}

var (
	separatorPattern  = regexp.MustCompile(`[\._]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer 名称清洗器 - 从原始名称中剥离发布组噪音
type Normalizer struct{}

// NewNormalizer 创建名称清洗器
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize 清洗原始名称
// 纯函数且幂等。步骤固定：去扩展名 -> 去括号段与垃圾词 -> 点/下划线换空格 -> 折叠空白。
// 括号段整体移除可能误删正常的括号内容，属于接受的折衷。
func (n *Normalizer) Normalize(raw string) string {
	name := strings.TrimSuffix(raw, filepath.Ext(raw))

	for _, pattern := range junkPatterns {
		name = pattern.ReplaceAllString(name, "")
	}

	name = separatorPattern.ReplaceAllString(name, " ")
	name = whitespacePattern.ReplaceAllString(name, " ")

	return strings.TrimSpace(name)
}
