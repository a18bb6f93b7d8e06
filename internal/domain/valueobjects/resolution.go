package valueobjects

// Resolution 分辨率值对象
// 从文件名中独立于媒体身份检测，仅附加到目标文件名，不属于身份本身
type Resolution string

const (
	Resolution2160p Resolution = "2160p"
	Resolution1080p Resolution = "1080p"
	Resolution720p  Resolution = "720p"
	Resolution480p  Resolution = "480p"
	ResolutionNone  Resolution = "" // 未检测到
)

// String 返回分辨率的字符串表示
func (r Resolution) String() string {
	return string(r)
}

// IsKnown 是否检测到了具体分辨率
func (r Resolution) IsKnown() bool {
	return r != ResolutionNone
}
