// Package middleware serves the static storefront pages and assets.
package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
)

// NotFoundPage is served with status 404 for unknown paths when present.
const NotFoundPage = "404.html"

// StaticOptions tunes caching of static responses.
type StaticOptions struct {
	// MaxAge applies to images, scripts and stylesheets.
	MaxAge time.Duration
}

// blockedExt lists source and tooling files kept next to the pages that must
// never be served.
var blockedExt = map[string]struct{}{
	".xlsx": {},
	".py":   {},
	".go":   {},
	".yaml": {},
	".yml":  {},
	".md":   {},
	".lock": {},
}

// StaticSite wraps a file server rooted at dir with cache headers, weak
// ETags and a custom 404 page.
func StaticSite(dir string, opts StaticOptions) http.Handler {
	etags := newETagCache(dir)
	files := http.FileServer(http.Dir(dir))
	assetCache := "public, max-age=" + strconv.Itoa(int(opts.MaxAge.Seconds())) + ", stale-while-revalidate=86400"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		urlPath := path.Clean("/" + r.URL.Path)
		if blocked(urlPath) {
			notFound(w, r, dir)
			return
		}

		name := urlPath
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			notFound(w, r, dir)
			return
		}
		if info.IsDir() {
			if !strings.HasSuffix(r.URL.Path, "/") {
				files.ServeHTTP(w, r)
				return
			}
			name = path.Join(name, "index.html")
			if info, err = os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
				notFound(w, r, dir)
				return
			}
		}

		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cacheControl(name, assetCache))
		if et := etags.lookup(name, info); et != "" {
			w.Header().Set("ETag", et)
			if matchesETag(r.Header.Get("If-None-Match"), et) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

func cacheControl(name, assetCache string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".xml", ".txt":
		return "public, max-age=0, must-revalidate"
	case ".json":
		return "no-cache"
	}
	return assetCache
}

func blocked(urlPath string) bool {
	for _, seg := range strings.Split(urlPath, "/") {
		if strings.HasPrefix(seg, ".") || seg == "node_modules" {
			return true
		}
	}
	switch path.Base(urlPath) {
	case "package.json", "package-lock.json", "go.mod", "go.sum":
		return true
	}
	_, ok := blockedExt[strings.ToLower(path.Ext(urlPath))]
	return ok
}

func notFound(w http.ResponseWriter, r *http.Request, dir string) {
	body, err := os.ReadFile(filepath.Join(dir, NotFoundPage))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}

// etagCache holds the weak ETag of each served file. An entry is reused only
// while the file keeps the size and modification time it was hashed at.
type etagCache struct {
	dir string

	mu      sync.Mutex
	entries map[string]etagEntry
}

type etagEntry struct {
	size    int64
	modTime time.Time
	etag    string
}

// newETagCache hashes every servable file under dir up front.
func newETagCache(dir string) *etagCache {
	c := &etagCache{dir: dir, entries: map[string]etagEntry{}}
	conf := fastwalk.DefaultConfig
	_ = fastwalk.Walk(&conf, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil || rel == "." {
			return nil
		}
		urlPath := "/" + filepath.ToSlash(rel)
		if blocked(urlPath) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil
		}
		c.refresh(urlPath, info)
		return nil
	})
	return c
}

// lookup returns the ETag for urlPath, rehashing the file when info shows it
// changed since the cached hash.
func (c *etagCache) lookup(urlPath string, info fs.FileInfo) string {
	c.mu.Lock()
	e, ok := c.entries[urlPath]
	c.mu.Unlock()
	if ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) {
		return e.etag
	}
	return c.refresh(urlPath, info)
}

func (c *etagCache) refresh(urlPath string, info fs.FileInfo) string {
	et, err := fileETag(filepath.Join(c.dir, filepath.FromSlash(urlPath)))
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		delete(c.entries, urlPath)
		return ""
	}
	c.entries[urlPath] = etagEntry{size: info.Size(), modTime: info.ModTime(), etag: et}
	return et
}

func fileETag(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`, nil
}
