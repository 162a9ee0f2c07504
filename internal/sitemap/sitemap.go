// Package sitemap crawls the static site and the game data files and writes
// an XML sitemap.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/nav"
	"github.com/diva3322/SSBuy-web/internal/observability"
)

// Namespace is the sitemap protocol namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

const dateLayout = "2006-01-02"

// URL is one sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Generator builds sitemaps for one Config.
type Generator struct {
	cfg   Config
	clock func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock overrides the time source used for entries without a date.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// New constructs a Generator.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg, clock: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Entries returns the static page entries followed by the game entries.
// Unreadable data files are logged and skipped.
func (g *Generator) Entries(ctx context.Context) (entries []URL, err error) {
	ctx, span := observability.StartSpan(ctx, "sitemap.Entries", attribute.String("sitemap.pages_dir", g.cfg.PagesDir))
	defer func() { observability.EndSpan(span, err) }()

	base, err := url.Parse(g.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("sitemap: base url: %w", err)
	}

	pages, err := g.staticPages(ctx, base)
	if err != nil {
		return nil, err
	}
	entries = append(entries, pages...)
	entries = append(entries, g.gameEntries(ctx)...)
	entries = append(entries, g.giftCodeEntries(ctx)...)

	span.SetAttributes(attribute.Int("sitemap.entries", len(entries)))
	return entries, nil
}

type page struct {
	rel     string
	modTime time.Time
}

func (g *Generator) staticPages(ctx context.Context, base *url.URL) ([]URL, error) {
	logger := observability.FromContext(ctx)
	root := g.cfg.PagesDir

	var (
		mu    sync.Mutex
		pages []page
	)
	conf := fastwalk.DefaultConfig
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("sitemap skipped unreadable path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if g.excluded(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !g.included(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Warn("sitemap skipped unreadable file", zap.String("path", rel), zap.Error(err))
			return nil
		}
		if g.cfg.skipNoindex() && isNoindex(path) {
			logger.Info("sitemap skipped noindex page", zap.String("path", rel))
			return nil
		}
		mu.Lock()
		pages = append(pages, page{rel: rel, modTime: info.ModTime()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sitemap: walk %s: %w", root, err)
	}

	slices.SortFunc(pages, func(a, b page) int { return comparePaths(a.rel, b.rel) })

	out := make([]URL, 0, len(pages))
	for _, p := range pages {
		urlPath := pagePath(p.rel)
		priority := "0.7"
		if strings.Contains(urlPath, "games/") {
			priority = "0.8"
		}
		out = append(out, URL{
			Loc:        base.ResolveReference(&url.URL{Path: urlPath}).String(),
			LastMod:    p.modTime.UTC().Format(dateLayout),
			ChangeFreq: "weekly",
			Priority:   priority,
		})
	}
	return out, nil
}

func (g *Generator) excluded(rel string) bool {
	for _, ex := range g.cfg.ExcludePaths {
		if ex != "" && strings.Contains(rel, ex) {
			return true
		}
	}
	return false
}

func (g *Generator) included(rel string) bool {
	return slices.Contains(g.cfg.IncludeExtensions, strings.ToLower(filepath.Ext(rel)))
}

// pagePath maps a page file to its URL path: index.html is the site root and
// dir/index.html is dir.
func pagePath(rel string) string {
	if rel == "index.html" {
		return ""
	}
	if strings.HasSuffix(rel, "/index.html") {
		return strings.TrimSuffix(rel, "/index.html")
	}
	return rel
}

// comparePaths orders paths segment by segment, matching a depth-first walk
// over sorted directory listings.
func comparePaths(a, b string) int {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}

func (g *Generator) gameEntries(ctx context.Context) []URL {
	if strings.TrimSpace(g.cfg.GamesData) == "" {
		return nil
	}
	logger := observability.FromContext(ctx)
	games, err := readGames(g.cfg.GamesData)
	if err != nil {
		logger.Error("sitemap games data unreadable; game pages skipped", zap.String("path", g.cfg.GamesData), zap.Error(err))
		return nil
	}
	today := g.clock().UTC().Format(dateLayout)
	out := make([]URL, 0, games.Len())
	for _, game := range games.All() {
		lastmod := today
		if strings.TrimSpace(game.LastUpdated) != "" {
			if d, ok := parseDate(game.LastUpdated); ok {
				lastmod = d.UTC().Format(dateLayout)
			} else {
				logger.Warn("sitemap ignored invalid last_updated", zap.String("game", game.Name), zap.String("last_updated", game.LastUpdated))
			}
		}
		out = append(out, URL{
			Loc:        g.cfg.BaseURL + nav.GameURL(game.Name),
			LastMod:    lastmod,
			ChangeFreq: "daily",
			Priority:   "0.9",
		})
	}
	return out
}

func (g *Generator) giftCodeEntries(ctx context.Context) []URL {
	if strings.TrimSpace(g.cfg.GiftCodesData) == "" {
		return nil
	}
	logger := observability.FromContext(ctx)
	f, err := os.Open(g.cfg.GiftCodesData)
	if err != nil {
		logger.Error("sitemap gift-code data unreadable; gift-code pages skipped", zap.Error(err))
		return nil
	}
	defer f.Close()
	set, err := catalog.DecodeGiftCodes(f)
	if err != nil {
		logger.Error("sitemap gift-code data unreadable; gift-code pages skipped", zap.Error(err))
		return nil
	}
	today := g.clock().UTC().Format(dateLayout)
	out := make([]URL, 0, set.Len())
	for _, name := range set.Names() {
		out = append(out, URL{
			Loc:        g.cfg.BaseURL + nav.GiftCodeURL(name),
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	return out
}

func readGames(path string) (*catalog.GameSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.DecodeGames(f)
}

var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006/1/2",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Write encodes entries as a sitemap document indented with four spaces.
func Write(w io.Writer, entries []URL) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(urlSet{Xmlns: Namespace, URLs: entries}); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Generate builds the sitemap and writes it to the configured output path.
// It returns the number of entries written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	entries, err := g.Entries(ctx)
	if err != nil {
		return 0, err
	}
	tmp := g.cfg.Output + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("sitemap: create output: %w", err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("sitemap: write output: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("sitemap: close output: %w", err)
	}
	if err := os.Rename(tmp, g.cfg.Output); err != nil {
		return 0, fmt.Errorf("sitemap: rename output: %w", err)
	}
	observability.FromContext(ctx).Info("sitemap generated", zap.String("output", g.cfg.Output), zap.Int("entries", len(entries)))
	return len(entries), nil
}
