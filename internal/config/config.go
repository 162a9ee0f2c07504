// Package config loads runtime settings for the storefront server and the
// site tools from a .env file, the process environment and explicit maps.
package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultSiteDir         = "./"
	defaultBaseURL         = "https://www.ssbuy.tw/"
	defaultStaticMaxAge    = time.Hour
	defaultCatalogCacheTTL = time.Minute
	defaultBoardTTL        = 30 * time.Minute
	defaultSweepInterval   = time.Minute
	defaultMaxBoards       = 10000
	defaultLogLevel        = "info"
	defaultSearchEndpoint  = "https://www.googleapis.com/customsearch/v1"
	defaultSearchDelay     = 1200 * time.Millisecond
	defaultRowDelay        = 500 * time.Millisecond
	defaultSearchRetries   = 2
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Site     SiteConfig
	Catalog  CatalogConfig
	Carousel CarouselConfig
	Search   SearchConfig
	Log      LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SiteConfig locates the static site and its public origin.
type SiteConfig struct {
	Dir          string
	BaseURL      string
	StaticMaxAge time.Duration
}

// CatalogConfig selects where games.json and gift-codes-data.json are read
// from. A non-empty URL takes precedence over Dir.
type CatalogConfig struct {
	Dir      string
	URL      string
	CacheTTL time.Duration
}

// CarouselConfig bounds the lifetime and number of live carousel boards.
type CarouselConfig struct {
	BoardTTL      time.Duration
	SweepInterval time.Duration
	MaxBoards     int
}

// SearchConfig configures the web search used by the games importer.
type SearchConfig struct {
	Endpoint   string
	APIKey     string
	EngineID   string
	Delay      time.Duration
	RowDelay   time.Duration
	MaxRetries int
}

// Enabled reports whether search credentials are present.
func (c SearchConfig) Enabled() bool {
	return c.APIKey != "" && c.EngineID != ""
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and explicit maps, in increasing order of precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:            stringWithDefault(lookup, "SSBUY_SERVER_ADDR", defaultAddr),
			ReadTimeout:     durationWithDefault(lookup, "SSBUY_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "SSBUY_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "SSBUY_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "SSBUY_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			Dir:          stringWithDefault(lookup, "SSBUY_SITE_DIR", defaultSiteDir),
			BaseURL:      stringWithDefault(lookup, "SSBUY_SITE_BASE_URL", defaultBaseURL),
			StaticMaxAge: durationWithDefault(lookup, "SSBUY_SITE_STATIC_MAX_AGE", defaultStaticMaxAge),
		},
		Catalog: CatalogConfig{
			Dir:      stringWithDefault(lookup, "SSBUY_CATALOG_DIR", ""),
			URL:      stringWithDefault(lookup, "SSBUY_CATALOG_URL", ""),
			CacheTTL: durationWithDefault(lookup, "SSBUY_CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		},
		Carousel: CarouselConfig{
			BoardTTL:      durationWithDefault(lookup, "SSBUY_CAROUSEL_BOARD_TTL", defaultBoardTTL),
			SweepInterval: durationWithDefault(lookup, "SSBUY_CAROUSEL_SWEEP_INTERVAL", defaultSweepInterval),
			MaxBoards:     intWithDefault(lookup, "SSBUY_CAROUSEL_MAX_BOARDS", defaultMaxBoards),
		},
		Search: SearchConfig{
			Endpoint:   stringWithDefault(lookup, "SSBUY_SEARCH_ENDPOINT", defaultSearchEndpoint),
			APIKey:     stringWithDefault(lookup, "SSBUY_SEARCH_API_KEY", ""),
			EngineID:   stringWithDefault(lookup, "SSBUY_SEARCH_ENGINE_ID", ""),
			Delay:      durationWithDefault(lookup, "SSBUY_SEARCH_DELAY", defaultSearchDelay),
			RowDelay:   durationWithDefault(lookup, "SSBUY_IMPORT_ROW_DELAY", defaultRowDelay),
			MaxRetries: intWithDefault(lookup, "SSBUY_SEARCH_MAX_RETRIES", defaultSearchRetries),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
	}

	// The catalog files live next to the pages unless configured elsewhere.
	if cfg.Catalog.Dir == "" {
		cfg.Catalog.Dir = cfg.Site.Dir
	}
	if !strings.HasSuffix(cfg.Site.BaseURL, "/") {
		cfg.Site.BaseURL += "/"
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		missing = append(missing, "Server.Addr")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		missing = append(missing, "Server.ShutdownTimeout")
	}
	if strings.TrimSpace(cfg.Site.Dir) == "" {
		missing = append(missing, "Site.Dir")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		missing = append(missing, "Site.BaseURL")
	}
	if cfg.Catalog.URL != "" {
		if u, err := url.Parse(cfg.Catalog.URL); err != nil || !u.IsAbs() {
			missing = append(missing, "Catalog.URL")
		}
	}
	if cfg.Catalog.CacheTTL < 0 {
		missing = append(missing, "Catalog.CacheTTL")
	}
	if cfg.Carousel.BoardTTL <= 0 {
		missing = append(missing, "Carousel.BoardTTL")
	}
	if cfg.Carousel.SweepInterval <= 0 {
		missing = append(missing, "Carousel.SweepInterval")
	}
	if cfg.Carousel.MaxBoards <= 0 {
		missing = append(missing, "Carousel.MaxBoards")
	}
	if cfg.Search.MaxRetries < 0 {
		missing = append(missing, "Search.MaxRetries")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		missing = append(missing, "Log.Level")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}
