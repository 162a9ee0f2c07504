package main

import (
	"testing"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/config"
)

func TestCatalogSourcePrefersURL(t *testing.T) {
	src := catalogSource(config.CatalogConfig{Dir: "site", URL: " https://cdn.example/data/ "})
	httpSrc, ok := src.(*catalog.HTTPSource)
	if !ok {
		t.Fatalf("expected HTTPSource, got %T", src)
	}
	if httpSrc.BaseURL != "https://cdn.example/data/" {
		t.Fatalf("unexpected base url %q", httpSrc.BaseURL)
	}

	src = catalogSource(config.CatalogConfig{Dir: "site"})
	if fs, ok := src.(catalog.FileSource); !ok || fs.Dir != "site" {
		t.Fatalf("expected FileSource for site, got %#v", src)
	}
}

func TestFlagOverrides(t *testing.T) {
	if got := flagOverrides("", "  "); len(got) != 0 {
		t.Fatalf("expected no overrides, got %v", got)
	}
	got := flagOverrides(":9090", "public")
	if got["SSBUY_SERVER_ADDR"] != ":9090" || got["SSBUY_SITE_DIR"] != "public" {
		t.Fatalf("unexpected overrides %v", got)
	}
}
