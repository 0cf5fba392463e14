// Package source provides an HTTP page source for paginated JSON APIs.
//
// A source fetches one page at a time from endpoints that report the total
// page count in a response header (X-Pages by default) and plugs into
// pkg/paginate through the Pages adapter. Responses can optionally be cached
// in Redis via pkg/cache. Failed requests are never retried.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/mst209/async-paginate/pkg/cache"
	"github.com/mst209/async-paginate/pkg/paginate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the page source configuration.
type Config struct {
	// BaseURL is the root URL of the API (e.g. "https://api.example.com").
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// PageParam is the query parameter carrying the page number (default: "page").
	PageParam string

	// TotalPagesHeader is the response header carrying the total page count
	// (default: "X-Pages"). Responses without it count as a single page.
	TotalPagesHeader string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Cache is an optional page cache consulted before the network.
	Cache *cache.Manager

	// CacheTTL is the lifetime of cached pages.
	CacheTTL time.Duration
}

// DefaultConfig returns a default configuration for the given base URL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:          baseURL,
		UserAgent:        "async-paginate/0.1.0",
		PageParam:        "page",
		TotalPagesHeader: "X-Pages",
		Timeout:          30 * time.Second,
		CacheTTL:         5 * time.Minute,
	}
}

// Client fetches single pages from a paginated HTTP JSON API.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new page source client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = "async-paginate/0.1.0"
	}
	if cfg.PageParam == "" {
		cfg.PageParam = "page"
	}
	if cfg.TotalPagesHeader == "" {
		cfg.TotalPagesHeader = "X-Pages"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: log.With().Str("component", "source").Logger(),
	}, nil
}

// FetchPage fetches a single page of an endpoint and returns the raw body
// plus the total page count the response reported.
func (c *Client) FetchPage(ctx context.Context, endpoint string, page int) ([]byte, int, error) {
	if page < 1 {
		return nil, 0, fmt.Errorf("page must be >= 1 (got %d)", page)
	}

	if c.config.Cache != nil {
		key := cache.Key{Endpoint: endpoint, Page: page}
		entry, err := c.config.Cache.Get(ctx, key)
		if err == nil {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Int("page", page).
				Msg("Cache hit")
			return entry.Data, entry.TotalPages, nil
		}
		if err != cache.ErrCacheMiss {
			c.logger.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("page", page).
				Msg("Cache get error")
		}
	}

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	reqURL, err := c.pageURL(endpoint, page)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("page", page).
		Msg("Fetching page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, 0, fmt.Errorf("fetch %s page %d: %w", endpoint, page, err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("page", page).
			Int("status", resp.StatusCode).
			Msg("Page request error")
		return nil, 0, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Page:       page,
			Message:    resp.Status,
		}
	}

	// Endpoints that do not report a page count serve a single page.
	totalPages := 1
	if raw := resp.Header.Get(c.config.TotalPagesHeader); raw != "" {
		totalPages, err = strconv.Atoi(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("parse %s header %q: %w", c.config.TotalPagesHeader, raw, err)
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response body: %w", err)
	}

	if c.config.Cache != nil {
		key := cache.Key{Endpoint: endpoint, Page: page}
		entry := cache.NewEntry(data, totalPages, c.config.CacheTTL)
		if err := c.config.Cache.Set(ctx, key, entry); err != nil {
			c.logger.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("page", page).
				Msg("Failed to cache page")
		} else {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Int("page", page).
				Dur("ttl", entry.TTL()).
				Msg("Cached page")
		}
	}

	return data, totalPages, nil
}

// pageURL builds the request URL for a page of an endpoint.
func (c *Client) pageURL(endpoint string, page int) (string, error) {
	u, err := url.Parse(c.config.BaseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("build URL for %s: %w", endpoint, err)
	}

	q := u.Query()
	q.Set(c.config.PageParam, strconv.Itoa(page))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Pages adapts one endpoint of the client into a paginate.PageFunc that
// decodes each page body as a JSON array of T.
func Pages[T any](c *Client, endpoint string) paginate.PageFunc[T] {
	return func(ctx context.Context, page int) (paginate.Page[T], error) {
		data, totalPages, err := c.FetchPage(ctx, endpoint, page)
		if err != nil {
			return paginate.Page[T]{}, err
		}

		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return paginate.Page[T]{}, fmt.Errorf("decode %s page %d: %w", endpoint, page, err)
		}

		return paginate.Page[T]{
			TotalPages: totalPages,
			Items:      items,
		}, nil
	}
}
