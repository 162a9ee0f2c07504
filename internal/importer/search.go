package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/config"
)

// ErrNoResult is returned when a search finds nothing.
var ErrNoResult = errors.New("importer: no search result")

// Searcher resolves a query to the first matching link.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string) (string, error)

// Search implements Searcher.
func (f SearcherFunc) Search(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// NoSearch finds nothing, so every link is recorded as missing.
var NoSearch Searcher = SearcherFunc(func(context.Context, string) (string, error) {
	return "", ErrNoResult
})

// WebSearch queries a Custom Search JSON endpoint for Taiwanese results.
type WebSearch struct {
	endpoint string
	apiKey   string
	engineID string
	client   *retryablehttp.Client
}

// NewWebSearch builds a client from cfg. Transient failures (429 and 5xx)
// are retried with backoff up to cfg.MaxRetries times.
func NewWebSearch(cfg config.SearchConfig, logger *zap.Logger) *WebSearch {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = leveledLogger{logger: logger}
	return &WebSearch{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		client:   client,
	}
}

type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// Search implements Searcher.
func (s *WebSearch) Search(ctx context.Context, query string) (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("importer: search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", s.apiKey)
	q.Set("cx", s.engineID)
	q.Set("q", query)
	q.Set("gl", "tw")
	q.Set("hl", "zh-TW")
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("importer: build search request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("importer: search %q: %w", query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("importer: search %q: status %d", query, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("importer: decode search %q: %w", query, err)
	}
	if len(payload.Items) == 0 || payload.Items[0].Link == "" {
		return "", ErrNoResult
	}
	return payload.Items[0].Link, nil
}

// leveledLogger routes retryablehttp diagnostics into zap.
type leveledLogger struct {
	logger *zap.Logger
}

func (l leveledLogger) fields(kv []any) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if key == "url" {
			// The query string carries the API key.
			if s, ok := kv[i+1].(string); ok {
				if u, err := url.Parse(s); err == nil {
					u.RawQuery = ""
					kv[i+1] = u.String()
				}
			}
		}
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	return fields
}

func (l leveledLogger) Error(msg string, kv ...any) { l.log().Error(msg, l.fields(kv)...) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.log().Warn(msg, l.fields(kv)...) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.log().Info(msg, l.fields(kv)...) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.log().Debug(msg, l.fields(kv)...) }

func (l leveledLogger) log() *zap.Logger {
	if l.logger == nil {
		return zap.NewNop()
	}
	return l.logger
}
