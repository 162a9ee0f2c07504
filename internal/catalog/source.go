package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source opens a named data file.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads data files from a directory.
type FileSource struct {
	Dir string
}

// Open implements Source.
func (s FileSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	dir := strings.TrimSpace(s.Dir)
	if dir == "" {
		dir = "."
	}
	return os.Open(filepath.Join(dir, filepath.Base(name)))
}

// HTTPSource fetches data files relative to a base URL, the way the static
// pages fetch them from the site root.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource constructs an HTTPSource with a bounded client timeout.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{BaseURL: baseURL, Client: &http.Client{Timeout: 5 * time.Second}}
}

// Open implements Source.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	endpoint, err := url.JoinPath(strings.TrimSpace(s.BaseURL), name)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", name, resp.StatusCode)
	}
	return resp.Body, nil
}
