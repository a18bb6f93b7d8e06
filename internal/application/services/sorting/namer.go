package sorting

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/easayliu/media-sorter/internal/domain/valueobjects"
	"github.com/easayliu/media-sorter/internal/infrastructure/filesystem"
	apperrors "github.com/easayliu/media-sorter/internal/shared/errors"
)

// ConflictPolicy 目标路径冲突策略
type ConflictPolicy string

const (
	ConflictPolicyVersion   ConflictPolicy = "version"   // 追加版本后缀（默认）
	ConflictPolicySkip      ConflictPolicy = "skip"      // 跳过该文件
	ConflictPolicyOverwrite ConflictPolicy = "overwrite" // 覆盖现有文件
)

// ErrSkipExisting 冲突策略为 skip 且目标已存在时返回
var ErrSkipExisting = errors.New("destination already exists, skipping per conflict policy")

// DefaultMaxVersionProbes 版本探测次数上限的默认值
const DefaultMaxVersionProbes = 1000

// Namer 目标命名器 - 计算不冲突的目标文件路径
//
// 同一部剧集/电影的不同分辨率副本靠分辨率标记区分，互不视为重复；
// 只有 (标题, 分辨率) 完全相同的再次出现才获得版本后缀。
// 已存在文件自身缺少分辨率标记时不会被重命名，新文件改走版本后缀。
type Namer struct {
	probe     filesystem.Probe
	policy    ConflictPolicy
	maxProbes int
}

// NewNamer 创建目标命名器
// maxProbes <= 0 时使用 DefaultMaxVersionProbes
func NewNamer(probe filesystem.Probe, policy ConflictPolicy, maxProbes int) *Namer {
	if policy == "" {
		policy = ConflictPolicyVersion
	}
	if maxProbes <= 0 {
		maxProbes = DefaultMaxVersionProbes
	}
	return &Namer{
		probe:     probe,
		policy:    policy,
		maxProbes: maxProbes,
	}
}

// WithProbe 返回使用指定探测器的命名器副本
// 流水线用它叠加本次运行内已分配的路径
func (n *Namer) WithProbe(probe filesystem.Probe) *Namer {
	return &Namer{
		probe:     probe,
		policy:    n.policy,
		maxProbes: n.maxProbes,
	}
}

// UniquePath 计算目标目录下不冲突的完整路径
// 版本1不带后缀；目标已被占用时按策略处理：version 从 v2 开始探测，
// skip 返回 ErrSkipExisting，overwrite 直接返回版本1路径。
// 探测超过上限视为硬失败（COLLISION_EXHAUSTED），调用方不得静默跳过。
func (n *Namer) UniquePath(dir, baseName, ext string, resolution valueobjects.Resolution) (string, error) {
	first := n.candidate(dir, baseName, ext, resolution, 1)
	if !n.probe.Exists(first) {
		return first, nil
	}

	switch n.policy {
	case ConflictPolicyOverwrite:
		return first, nil
	case ConflictPolicySkip:
		return "", ErrSkipExisting
	}

	for version := 2; version <= n.maxProbes; version++ {
		candidate := n.candidate(dir, baseName, ext, resolution, version)
		if !n.probe.Exists(candidate) {
			return candidate, nil
		}
	}

	return "", apperrors.NewServiceErrorWithDetails(
		apperrors.ErrorCodeCollisionExhausted,
		fmt.Sprintf("no free destination after %d version probes", n.maxProbes),
		map[string]interface{}{
			"dir":        dir,
			"base_name":  baseName,
			"resolution": resolution.String(),
		},
	)
}

// candidate 构造指定版本的候选路径
// 版本1: base.{resolution}{ext}；版本N: base.{resolution}.vN{ext}
func (n *Namer) candidate(dir, baseName, ext string, resolution valueobjects.Resolution, version int) string {
	name := baseName
	if resolution.IsKnown() {
		name += "." + resolution.String()
	}
	if version >= 2 {
		name += fmt.Sprintf(".v%d", version)
	}
	return filepath.Join(dir, name+ext)
}
