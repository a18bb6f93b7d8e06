package valueobjects

import "fmt"

// MediaIdentity 媒体身份值对象
// 两种形态之一：剧集（剧名+季+集）或电影（片名）。
// 分类是全函数：任何名称都会得到其中一种形态，未匹配剧集模式时默认为电影。
type MediaIdentity struct {
	Type      MediaType
	ShowTitle string // 剧集名，Type 为 TV 时有效
	Season    int    // 季号，>= 0
	Episode   int    // 集号，>= 0
	Title     string // 电影名，Type 为 Movie 时有效
}

// NewEpisodeIdentity 创建剧集身份
func NewEpisodeIdentity(showTitle string, season, episode int) MediaIdentity {
	return MediaIdentity{
		Type:      MediaTypeTV,
		ShowTitle: showTitle,
		Season:    season,
		Episode:   episode,
	}
}

// NewMovieIdentity 创建电影身份
func NewMovieIdentity(title string) MediaIdentity {
	return MediaIdentity{
		Type:  MediaTypeMovie,
		Title: title,
	}
}

// IsEpisode 是否为剧集
func (m MediaIdentity) IsEpisode() bool {
	return m.Type == MediaTypeTV
}

// String 用于日志输出
func (m MediaIdentity) String() string {
	if m.IsEpisode() {
		return fmt.Sprintf("%s S%02dE%02d", m.ShowTitle, m.Season, m.Episode)
	}
	return m.Title
}
