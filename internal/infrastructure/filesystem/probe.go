package filesystem

import "os"

// Probe 文件存在性探测能力
// 命名决策通过该接口询问文件系统当前状态，测试中可替换为内存实现。
// 实现必须反映调用时刻的真实状态，探测循环内不允许缓存。
type Probe interface {
	Exists(path string) bool
}

// OSProbe 基于真实文件系统的探测实现
type OSProbe struct{}

// Exists 检查路径是否存在
func (OSProbe) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
