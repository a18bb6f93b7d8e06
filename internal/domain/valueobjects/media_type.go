package valueobjects

// MediaType 媒体类型值对象
// 不可变的值对象,表示条目的媒体分类
type MediaType string

const (
	MediaTypeMovie MediaType = "movie" // 电影
	MediaTypeTV    MediaType = "tv"    // 电视剧
)

// String 返回媒体类型的字符串表示
func (m MediaType) String() string {
	return string(m)
}

// IsValid 检查媒体类型是否有效
func (m MediaType) IsValid() bool {
	switch m {
	case MediaTypeMovie, MediaTypeTV:
		return true
	default:
		return false
	}
}
