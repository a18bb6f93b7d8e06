package sorting

import (
	"path/filepath"
	"regexp"
	"strings"
)

// 语言后缀到 ISO 639-1 代码的映射
var languageCodes = map[string]string{
	"en": "en", "eng": "en", "english": "en",
	"es": "es", "spa": "es", "spanish": "es",
	"fr": "fr", "fre": "fr", "fra": "fr", "french": "fr",
	"de": "de", "ger": "de", "deu": "de", "german": "de",
	"it": "it", "ita": "it", "italian": "it",
	"pt": "pt", "por": "pt", "portuguese": "pt",
	"ru": "ru", "rus": "ru", "russian": "ru",
	"ja": "ja", "jpn": "ja", "japanese": "ja",
	"ko": "ko", "kor": "ko", "korean": "ko",
	"zh": "zh", "chi": "zh", "chs": "zh", "cht": "zh", "chinese": "zh",
}

// 变体后缀：forced 强制字幕，sdh/cc/hi 听障字幕
// hi 在字幕后缀语境中是 hearing-impaired，不是印地语
var variantTokens = map[string]string{
	"forced": "forced",
	"sdh":    "sdh",
	"cc":     "sdh",
	"hi":     "sdh",
}

var nonAlphanumericPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SubtitleTag 字幕的语言与变体标记
type SubtitleTag struct {
	Language string // ISO 639-1 代码，未识别时为空
	Forced   bool
	SDH      bool
}

// Matcher 字幕匹配器 - 将字幕文件关联到同目录下的视频文件
//
// 匹配规则按优先级应用，每条规则内按调用方给出的候选顺序取第一个：
//  a. 剥离语言/变体后缀后的名称与视频名完全相同
//  b. 原始名称与视频名完全相同
//  c. 任一方向的包含关系
//
// 比较一律使用只保留字母数字的小写键，点号、连字符等分隔差异不影响匹配。
type Matcher struct{}

// NewMatcher 创建字幕匹配器
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match 为字幕文件挑选匹配的视频
// candidateVideos 传入视频文件名（不含目录），返回命中的那一个。
// 所有规则都未命中时返回 false，字幕留在原地由调用方处理。
func (m *Matcher) Match(subtitleName string, candidateVideos []string) (string, bool) {
	subBase := trimExt(subtitleName)
	strippedKey := comparisonKey(stripVariantSuffixes(subBase))
	rawKey := comparisonKey(subBase)

	// 规则a：剥离后缀后完全相同
	for _, video := range candidateVideos {
		if strippedKey != "" && strippedKey == comparisonKey(trimExt(video)) {
			return video, true
		}
	}

	// 规则b：原始名称完全相同
	for _, video := range candidateVideos {
		if rawKey != "" && rawKey == comparisonKey(trimExt(video)) {
			return video, true
		}
	}

	// 规则c：包含关系，任一方向
	for _, video := range candidateVideos {
		videoKey := comparisonKey(trimExt(video))
		if strippedKey == "" || videoKey == "" {
			continue
		}
		if strings.Contains(videoKey, strippedKey) || strings.Contains(strippedKey, videoKey) {
			return video, true
		}
	}

	return "", false
}

// DetectTag 识别字幕名尾部的语言与变体后缀
// 从末尾逐段向前扫描，遇到第一个非语言非变体的段即停止
func (m *Matcher) DetectTag(subtitleName string) SubtitleTag {
	var tag SubtitleTag

	base := trimExt(subtitleName)
	for {
		idx := strings.LastIndex(base, ".")
		if idx < 0 {
			break
		}
		token := strings.ToLower(base[idx+1:])

		if variant, ok := variantTokens[token]; ok {
			switch variant {
			case "forced":
				tag.Forced = true
			case "sdh":
				tag.SDH = true
			}
			base = base[:idx]
			continue
		}
		if code, ok := languageCodes[token]; ok {
			tag.Language = code
			base = base[:idx]
			continue
		}
		break
	}

	return tag
}

// stripVariantSuffixes 剥离尾部的语言与变体后缀段
func stripVariantSuffixes(base string) string {
	for {
		idx := strings.LastIndex(base, ".")
		if idx < 0 {
			return base
		}
		token := strings.ToLower(base[idx+1:])
		if _, ok := variantTokens[token]; ok {
			base = base[:idx]
			continue
		}
		if _, ok := languageCodes[token]; ok {
			base = base[:idx]
			continue
		}
		return base
	}
}

// comparisonKey 构造比较键：小写并去掉所有非字母数字字符
func comparisonKey(name string) string {
	return nonAlphanumericPattern.ReplaceAllString(strings.ToLower(name), "")
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
