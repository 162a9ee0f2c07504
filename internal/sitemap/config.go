package sitemap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config controls what the generator crawls and where it writes.
type Config struct {
	BaseURL           string   `yaml:"base_url" validate:"required,url"`
	PagesDir          string   `yaml:"pages_dir" validate:"required"`
	IncludeExtensions []string `yaml:"include_extensions" validate:"min=1,dive,required"`
	ExcludePaths      []string `yaml:"exclude_paths"`
	GamesData         string   `yaml:"games_data"`
	GiftCodesData     string   `yaml:"gift_codes_data"`
	Output            string   `yaml:"output" validate:"required"`
	SkipNoindex       *bool    `yaml:"skip_noindex"`
}

// DefaultConfig returns the settings used for www.ssbuy.tw.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://www.ssbuy.tw/",
		PagesDir:          "./",
		IncludeExtensions: []string{".html"},
		ExcludePaths: []string{
			"404.html",
			"node_modules",
			".git",
			".github",
			"generate-sitemap.js",
			"package.json",
			"package-lock.json",
			"games.json",
			"sitemap.xml",
		},
		GamesData: "games.json",
		Output:    "sitemap.xml",
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default values. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("sitemap: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("sitemap: parse config: %w", err)
		}
	}
	return cfg.Normalize()
}

// Normalize canonicalizes the base URL and extensions and validates c.
func (c Config) Normalize() (Config, error) {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	for i, ext := range c.IncludeExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.IncludeExtensions[i] = ext
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Config{}, fmt.Errorf("sitemap: invalid config: %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return Config{}, fmt.Errorf("sitemap: invalid config: %w", err)
	}
	return c, nil
}

func (c Config) skipNoindex() bool {
	return c.SkipNoindex == nil || *c.SkipNoindex
}
