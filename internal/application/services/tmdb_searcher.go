package services

import (
	"context"

	"github.com/easayliu/media-sorter/internal/application/services/sorting"
	"github.com/easayliu/media-sorter/internal/domain/valueobjects"
	"github.com/easayliu/media-sorter/internal/infrastructure/tmdb"
)

// TMDBSearcher 把TMDB客户端适配成标题解析器需要的查询能力
// 只取第一个搜索结果，结果列表为空视为无结果
type TMDBSearcher struct {
	client *tmdb.Client
}

func NewTMDBSearcher(client *tmdb.Client) *TMDBSearcher {
	return &TMDBSearcher{client: client}
}

func (s *TMDBSearcher) Search(ctx context.Context, query string, mediaType valueobjects.MediaType) (*sorting.SearchResult, error) {
	if mediaType == valueobjects.MediaTypeTV {
		resp, err := s.client.SearchTV(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 {
			return nil, nil
		}
		first := resp.Results[0]
		return &sorting.SearchResult{
			Title:       first.Name,
			ReleaseDate: first.FirstAirDate,
		}, nil
	}

	resp, err := s.client.SearchMovie(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	first := resp.Results[0]
	return &sorting.SearchResult{
		Title:       first.Title,
		ReleaseDate: first.ReleaseDate,
	}, nil
}
