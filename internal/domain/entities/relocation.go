package entities

// FileKind 待迁移文件的种类
type FileKind string

const (
	FileKindVideo    FileKind = "video"    // 视频文件
	FileKindSubtitle FileKind = "subtitle" // 字幕文件
)

// RelocationInstruction 迁移指令
// 分类与命名引擎的最终产物，由上层执行器完成实际移动
type RelocationInstruction struct {
	SourcePath string   `json:"source_path"` // 源文件完整路径
	DestPath   string   `json:"dest_path"`   // 目标文件完整路径
	Kind       FileKind `json:"kind"`        // 文件种类
}
