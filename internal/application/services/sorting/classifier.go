package sorting

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/easayliu/media-sorter/internal/domain/valueobjects"
)

// 剧集模式按优先级排列，第一个命中的模式生效。
// 模式作用于原始名称：剧集标记（如 S01E02）必须保持原样才能命中，
// 清洗只作用于匹配位置之前的剧名子串。
var tvPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)S(\d{1,2})E(\d{1,2})`),                                       // S01E01
	regexp.MustCompile(`(?i)(\d{1,2})x(\d{1,2})`),                                        // 1x01
	regexp.MustCompile(`(?i)Season[\s\._-]*(\d{1,2})[\s\._-]*Episode[\s\._-]*(\d{1,2})`), // Season 1 Episode 1
}

// 分辨率模式按固定顺序扫描，第一个命中的生效
var resolutionPatterns = []struct {
	pattern *regexp.Regexp
	value   valueobjects.Resolution
}{
	{regexp.MustCompile(`(?i)\b(2160p|4K|UHD)\b`), valueobjects.Resolution2160p},
	{regexp.MustCompile(`(?i)\b(1080p|FHD)\b`), valueobjects.Resolution1080p},
	{regexp.MustCompile(`(?i)\b(720p|HD)\b`), valueobjects.Resolution720p},
	{regexp.MustCompile(`(?i)\b(480p|SD)\b`), valueobjects.Resolution480p},
}

// Classifier 媒体分类器 - 判定名称是剧集还是电影
type Classifier struct {
	normalizer *Normalizer
}

// NewClassifier 创建媒体分类器
func NewClassifier(normalizer *Normalizer) *Classifier {
	return &Classifier{normalizer: normalizer}
}

// Classify 对名称进行分类
// 所有剧集模式都未命中时归为电影，分类对任何输入都有确定结果。
// 即使多个模式都能命中，也只采用优先级最高的那个。
func (c *Classifier) Classify(name string) valueobjects.MediaIdentity {
	for _, pattern := range tvPatterns {
		loc := pattern.FindStringSubmatchIndex(name)
		if loc == nil {
			continue
		}

		season, _ := strconv.Atoi(name[loc[2]:loc[3]])
		episode, _ := strconv.Atoi(name[loc[4]:loc[5]])

		// 剧名取匹配位置之前的子串，清洗后使用
		showTitle := c.normalizer.Normalize(strings.TrimSpace(name[:loc[0]]))

		return valueobjects.NewEpisodeIdentity(showTitle, season, episode)
	}

	return valueobjects.NewMovieIdentity(c.normalizer.Normalize(name))
}

// DetectResolution 从名称中检测分辨率标记
// 与媒体身份无关的独立检测，未命中返回 ResolutionNone
func (c *Classifier) DetectResolution(name string) valueobjects.Resolution {
	for _, rp := range resolutionPatterns {
		if rp.pattern.MatchString(name) {
			return rp.value
		}
	}
	return valueobjects.ResolutionNone
}
