package valueobjects

// CanonicalTitle 规范标题值对象
// TMDB 查询成功时为查询结果的展示名，否则为清洗后的原始标题。
// Year 仅在电影且查询结果带上映日期时存在。
type CanonicalTitle struct {
	Title string
	Year  string // 4位年份，可为空
}

// Display 返回用于目录和文件命名的展示形式
// 有年份时为 "Title (Year)"，否则为 Title
func (t CanonicalTitle) Display() string {
	if t.Year != "" {
		return t.Title + " (" + t.Year + ")"
	}
	return t.Title
}
