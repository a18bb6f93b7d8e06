package sorting

import (
	"context"
	"sync"
	"time"

	"github.com/easayliu/media-sorter/internal/domain/valueobjects"
	"github.com/easayliu/media-sorter/pkg/logger"
)

// SearchResult 元数据查询结果
type SearchResult struct {
	Title       string // 电影标题或剧集展示名
	ReleaseDate string // 上映日期，可为空
}

// MetadataSearcher 外部元数据查询能力
// 实现必须有界超时。返回 (nil, nil) 表示无结果；
// 未配置查询服务时可以永久返回无结果。
type MetadataSearcher interface {
	Search(ctx context.Context, query string, mediaType valueobjects.MediaType) (*SearchResult, error)
}

// Resolver 标题解析器 - 将清洗后的标题解析为规范展示标题
// 查询失败、超时或无结果时降级为清洗后的标题，从不向上传播错误。
// 同一标题在一次运行内只查询一次，运行之间不保留缓存（需调用 Reset）。
type Resolver struct {
	searcher MetadataSearcher
	timeout  time.Duration

	mu    sync.Mutex
	cache map[string]valueobjects.CanonicalTitle
}

// NewResolver 创建标题解析器，searcher 为 nil 时始终使用清洗后的标题
func NewResolver(searcher MetadataSearcher, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		searcher: searcher,
		timeout:  timeout,
		cache:    make(map[string]valueobjects.CanonicalTitle),
	}
}

// Reset 清空运行内缓存，每次扫描运行开始时调用
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]valueobjects.CanonicalTitle)
	r.mu.Unlock()
}

// Resolve 解析规范标题
// 电影在查询结果带上映日期时取其4位年份；剧集只取展示名。
// 只采用查询返回的第一个候选，不做多结果消歧。
func (r *Resolver) Resolve(ctx context.Context, normalizedTitle string, mediaType valueobjects.MediaType) valueobjects.CanonicalTitle {
	key := mediaType.String() + ":" + normalizedTitle

	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	title := r.lookup(ctx, normalizedTitle, mediaType)

	r.mu.Lock()
	r.cache[key] = title
	r.mu.Unlock()

	return title
}

func (r *Resolver) lookup(ctx context.Context, normalizedTitle string, mediaType valueobjects.MediaType) valueobjects.CanonicalTitle {
	fallback := valueobjects.CanonicalTitle{Title: normalizedTitle}

	if r.searcher == nil || normalizedTitle == "" {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.searcher.Search(ctx, normalizedTitle, mediaType)
	if err != nil {
		logger.Warn("Metadata lookup failed, using cleaned title",
			"title", normalizedTitle, "type", mediaType.String(), "error", err)
		return fallback
	}
	if result == nil || result.Title == "" {
		logger.Debug("Metadata lookup returned no result", "title", normalizedTitle)
		return fallback
	}

	canonical := valueobjects.CanonicalTitle{Title: result.Title}
	if mediaType == valueobjects.MediaTypeMovie && len(result.ReleaseDate) >= 4 {
		canonical.Year = result.ReleaseDate[:4]
	}

	logger.Debug("Resolved canonical title",
		"query", normalizedTitle, "title", canonical.Title, "year", canonical.Year)
	return canonical
}
