package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/easayliu/media-sorter/internal/infrastructure/config"
	"github.com/easayliu/media-sorter/internal/infrastructure/ratelimit"
	httputil "github.com/easayliu/media-sorter/pkg/httpclient"
	"github.com/easayliu/media-sorter/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	DefaultTimeout = 10 * time.Second
)

type Client struct {
	BaseURL     string
	APIKey      string
	Language    string
	httpClient  *http.Client
	rateLimiter *ratelimit.RateLimiter
}

func NewClient(cfg *config.TMDBConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	language := cfg.Language
	if language == "" {
		language = "en-US"
	}

	return &Client{
		BaseURL:  baseURL,
		APIKey:   cfg.APIKey,
		Language: language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: ratelimit.NewRateLimiter(cfg.QPS),
	}
}

// IsConfigured API key 未配置时客户端处于永久"无结果"模式
func (c *Client) IsConfigured() bool {
	return c.APIKey != ""
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, params url.Values, result interface{}) error {
	if c.APIKey == "" {
		return fmt.Errorf("TMDB API key is not set")
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit exceeded: %w", err)
		}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.APIKey)
	if c.Language != "" {
		params.Set("language", c.Language)
	}

	urlStr := fmt.Sprintf("%s%s?%s", c.BaseURL, endpoint, params.Encode())

	logger.Debug("TMDB API Request",
		"method", method,
		"endpoint", endpoint,
		"language", c.Language)

	opts := httputil.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient)

	err := httputil.DoJSONRequest(method, urlStr, nil, result, opts)
	if err != nil {
		logger.Error("TMDB API Request failed", "endpoint", endpoint, "error", err)
	}
	return err
}

func (c *Client) SearchMovie(ctx context.Context, query string) (*SearchMovieResponse, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp SearchMovieResponse
	if err := c.makeRequest(ctx, "GET", "/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search movie: %w", err)
	}

	return &resp, nil
}

func (c *Client) SearchTV(ctx context.Context, query string) (*SearchTVResponse, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp SearchTVResponse
	if err := c.makeRequest(ctx, "GET", "/search/tv", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search TV: %w", err)
	}

	return &resp, nil
}
