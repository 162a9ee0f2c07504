package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diva3322/SSBuy-web/internal/seo"
)

func getMeta(t *testing.T, h http.Handler, page, game string) seo.Meta {
	t.Helper()
	q := url.Values{}
	if page != "" {
		q.Set("page", page)
	}
	if game != "" {
		q.Set("game", game)
	}
	rec := do(t, h, http.MethodGet, "/api/meta?"+q.Encode(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[seo.Meta](t, rec)
}

func jsonLDTypes(m seo.Meta) []string {
	out := make([]string, 0, len(m.JSONLD))
	for _, v := range m.JSONLD {
		s, _ := v["@type"].(string)
		out = append(out, s)
	}
	return out
}

func TestMetaPerPage(t *testing.T) {
	router := newTestRouter(newTestStore(t))

	home := getMeta(t, router, "", "")
	assert.Equal(t, seo.SiteURL, home.Canonical)
	assert.Equal(t, []string{"Organization", "WebSite"}, jsonLDTypes(home))

	all := getMeta(t, router, "all-games.html", "")
	assert.Equal(t, "所有遊戲 - 速速幫你儲手遊", all.Title)
	assert.Equal(t, []string{"BreadcrumbList"}, jsonLDTypes(all))

	overview := getMeta(t, router, "/giftcodes-list.html", "")
	assert.Equal(t, seo.SiteURL+"giftcodes-list.html", overview.Canonical)

	contact := getMeta(t, router, "contact.html", "")
	assert.Equal(t, seo.SiteURL+"contact.html", contact.Canonical)
	assert.Equal(t, "website", contact.OG.Type)
}

func TestMetaGameDetail(t *testing.T) {
	router := newTestRouter(newTestStore(t))

	found := getMeta(t, router, "game-detail.html", "天堂W")
	assert.Equal(t, "天堂W 代儲值 - 速速幫你儲手遊", found.Title)
	assert.Equal(t, "article", found.OG.Type)
	assert.Equal(t, []string{"Product", "BreadcrumbList"}, jsonLDTypes(found))
	offers, ok := found.JSONLD[0]["offers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "290", offers["lowPrice"])
	assert.Equal(t, "950", offers["highPrice"])

	missing := getMeta(t, router, "game-detail.html", "不存在")
	assert.Equal(t, "遊戲不存在 - 速速幫你儲手遊", missing.Title)

	unnamed := getMeta(t, router, "game-detail.html", "")
	assert.Equal(t, "未提供遊戲名稱 - 速速幫你儲手遊", unnamed.Title)

	failed := getMeta(t, newTestRouter(newFailingStore()), "game-detail.html", "天堂W")
	assert.Equal(t, "載入失敗 - 速速幫你儲手遊", failed.Title)
}

func TestMetaGiftCodeDetail(t *testing.T) {
	m := getMeta(t, newTestRouter(newTestStore(t)), "gift-codes.html", "原神")
	assert.Equal(t, seo.SiteURL+"gift-codes.html?game=%E5%8E%9F%E7%A5%9E", m.Canonical)
	assert.Equal(t, []string{"BreadcrumbList"}, jsonLDTypes(m))
}
