package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.BaseURL != "https://www.ssbuy.tw/" {
		t.Errorf("unexpected base url: %s", cfg.Site.BaseURL)
	}
	if cfg.Catalog.Dir != cfg.Site.Dir {
		t.Errorf("expected catalog dir to default to site dir, got %s", cfg.Catalog.Dir)
	}
	if cfg.Carousel.BoardTTL != 30*time.Minute {
		t.Errorf("unexpected board ttl: %s", cfg.Carousel.BoardTTL)
	}
	if cfg.Carousel.MaxBoards != 10000 {
		t.Errorf("unexpected max boards: %d", cfg.Carousel.MaxBoards)
	}
	if cfg.Search.Delay != 1200*time.Millisecond {
		t.Errorf("unexpected search delay: %s", cfg.Search.Delay)
	}
	if cfg.Search.Enabled() {
		t.Errorf("expected search disabled without credentials")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"SSBUY_SERVER_ADDR":             "127.0.0.1:9090",
		"SSBUY_SERVER_SHUTDOWN_TIMEOUT": "3s",
		"SSBUY_SITE_DIR":                "/srv/site",
		"SSBUY_SITE_BASE_URL":           "https://staging.ssbuy.tw",
		"SSBUY_CATALOG_URL":             "https://cdn.ssbuy.tw/data/",
		"SSBUY_CATALOG_CACHE_TTL":       "0s",
		"SSBUY_CAROUSEL_BOARD_TTL":      "5m",
		"SSBUY_CAROUSEL_MAX_BOARDS":     "250",
		"SSBUY_SEARCH_API_KEY":          "key",
		"SSBUY_SEARCH_ENGINE_ID":        "cx",
		"SSBUY_SEARCH_DELAY":            "0s",
		"SSBUY_SEARCH_MAX_RETRIES":      "4",
		"LOG_LEVEL":                     "DEBUG",
	}

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("unexpected shutdown timeout: %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Site.BaseURL != "https://staging.ssbuy.tw/" {
		t.Errorf("expected trailing slash on base url, got %s", cfg.Site.BaseURL)
	}
	if cfg.Catalog.Dir != "/srv/site" {
		t.Errorf("unexpected catalog dir: %s", cfg.Catalog.Dir)
	}
	if cfg.Catalog.URL != "https://cdn.ssbuy.tw/data/" {
		t.Errorf("unexpected catalog url: %s", cfg.Catalog.URL)
	}
	if cfg.Catalog.CacheTTL != 0 {
		t.Errorf("expected caching disabled, got %s", cfg.Catalog.CacheTTL)
	}
	if cfg.Carousel.BoardTTL != 5*time.Minute {
		t.Errorf("unexpected board ttl: %s", cfg.Carousel.BoardTTL)
	}
	if cfg.Carousel.MaxBoards != 250 {
		t.Errorf("unexpected max boards: %d", cfg.Carousel.MaxBoards)
	}
	if !cfg.Search.Enabled() || cfg.Search.MaxRetries != 4 || cfg.Search.Delay != 0 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
}

func TestLoadDotEnvFallback(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# local overrides\nexport SSBUY_SERVER_ADDR=:7070\nSSBUY_SITE_DIR=\"/var/www\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dotenv file: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvFile(envPath),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"SSBUY_SITE_DIR": "/override"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("expected addr from dotenv :7070, got %s", cfg.Server.Addr)
	}
	if cfg.Site.Dir != "/override" {
		t.Errorf("expected explicit map to win over dotenv, got %s", cfg.Site.Dir)
	}
}

func TestLoadInvalid(t *testing.T) {
	env := map[string]string{
		"SSBUY_SITE_BASE_URL":           "not a url",
		"SSBUY_CAROUSEL_SWEEP_INTERVAL": "-1s",
		"SSBUY_CAROUSEL_MAX_BOARDS":     "0",
		"LOG_LEVEL":                     "verbose",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := verr.Fields()
	want := []string{"Site.BaseURL", "Carousel.SweepInterval", "Carousel.MaxBoards", "Log.Level"}
	if len(fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: expected %s, got %s", i, want[i], fields[i])
		}
	}
}
