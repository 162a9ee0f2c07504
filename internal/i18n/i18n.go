// Package i18n holds the storefront's user-facing messages. The site ships a
// single zh-TW bundle; further locales can be added next to it.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"

	"golang.org/x/text/language"
)

// DefaultLang is the language every message exists in.
const DefaultLang = "zh-TW"

//go:embed locales/*.json
var embedded embed.FS

// Bundle is a read-only set of message catalogs keyed by language tag.
type Bundle struct {
	dict     map[string]map[string]string
	fallback string
	tags     []language.Tag
	matcher  language.Matcher
}

// Default returns the embedded bundle. It panics if the embedded files are
// malformed, which is a build error.
func Default() *Bundle {
	b, err := Load(embedded, "locales", DefaultLang, nil)
	if err != nil {
		panic(err)
	}
	return b
}

// Load reads <dir>/<lang>.json from fsys for each supported language. The
// fallback catalog must exist; others may be missing.
func Load(fsys fs.FS, dir string, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{fallback}
	}
	b := &Bundle{dict: map[string]map[string]string{}, fallback: fallback}
	for _, l := range supported {
		raw, err := fs.ReadFile(fsys, path.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}

	// The fallback goes first so the matcher prefers it on ties.
	langs := b.Supported()
	sort.SliceStable(langs, func(i, j int) bool { return langs[i] == fallback && langs[j] != fallback })
	for _, l := range langs {
		b.tags = append(b.tags, language.MustParse(l))
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Supported returns the loaded languages in sorted order.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.dict))
	for k := range b.dict {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// T returns the message for key in lang, falling back to the default
// language and finally to key itself.
func (b *Bundle) T(lang, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Tf formats the message for key with args.
func (b *Bundle) Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(b.T(lang, key), args...)
}

// Variants returns the numbered messages key.1, key.2, ... until the first
// gap.
func (b *Bundle) Variants(lang, key string) []string {
	var out []string
	for i := 1; ; i++ {
		k := key + "." + strconv.Itoa(i)
		v := b.T(lang, k)
		if v == k {
			return out
		}
		out = append(out, v)
	}
}

// Resolve picks the best supported language for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.fallback
	}
	return b.tags[idx].String()
}
