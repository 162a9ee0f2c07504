package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diva3322/SSBuy-web/internal/catalog"
)

func TestGiftCodeOverview(t *testing.T) {
	router := newTestRouter(newTestStore(t))

	rec := do(t, router, http.MethodGet, "/api/giftcodes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[giftCodeOverviewResponse](t, rec)
	assert.Equal(t, "2025每日更新禮包碼", resp.Subtitle)
	require.Len(t, resp.Games, 3)
	assert.Equal(t, "Arena Breakout", resp.Games[0].Name)
	assert.Equal(t, "giftcodesbanner/ab.jpg", resp.Games[0].Banner)
	for _, g := range resp.Games {
		if g.Name == "天堂W" {
			assert.Equal(t, catalog.DefaultBanner, g.Banner)
			assert.Equal(t, "gift-codes.html?game=%E5%A4%A9%E5%A0%82W", g.Href)
		}
	}

	rec = do(t, router, http.MethodGet, "/api/giftcodes?q=ARENA", "")
	resp = decode[giftCodeOverviewResponse](t, rec)
	require.Len(t, resp.Games, 1)
	assert.Equal(t, "Arena Breakout", resp.Games[0].Name)

	rec = do(t, router, http.MethodGet, "/api/giftcodes?q=zzz", "")
	resp = decode[giftCodeOverviewResponse](t, rec)
	assert.Empty(t, resp.Games)
	assert.NotEmpty(t, resp.Message)
}

func TestGiftCodeSubtitleClampsPick(t *testing.T) {
	h := NewGiftCodeHandlers(newTestStore(t), nil, nil,
		WithGiftCodeClock(func() time.Time { return testNow }),
		WithSubtitlePicker(func(n int) int { return n + 5 }),
	)
	req := httptest.NewRequest(http.MethodGet, "/api/giftcodes", nil)
	assert.Equal(t, "2025豐富虛寶等你領", h.subtitle(req))
}

func TestGiftCodeDetailDefaults(t *testing.T) {
	rec := do(t, newTestRouter(newTestStore(t)), http.MethodGet, "/api/giftcodes/"+url.PathEscape("天堂W"), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[giftCodeDetailResponse](t, rec)

	assert.Equal(t, "天堂W 最新 禮包碼/兌換碼/序號/免費領取", resp.Title)
	assert.Equal(t, catalog.DefaultBanner, resp.Banner)
	assert.Equal(t, catalog.DefaultGiftDescription, resp.Description)
	assert.Equal(t, []string{catalog.DefaultHowTo}, resp.HowTo)
	assert.Empty(t, resp.Codes)
	assert.Equal(t, "目前沒有公開的禮包碼。", resp.CodesMessage)
	assert.Contains(t, resp.Intro, "天堂W在2025年")
	assert.Equal(t, "game-detail.html?game=%E5%A4%A9%E5%A0%82W", resp.GameURL)
	assert.Equal(t, []string{"原神", "Arena Breakout", "天堂W"}, cardNames(resp.Recommended))
	assert.Equal(t, "https://www.ssbuy.tw/gift-codes.html?game=%E5%A4%A9%E5%A0%82W", resp.Meta.Canonical)
}

func TestGiftCodeDetailRendersContent(t *testing.T) {
	rec := do(t, newTestRouter(newTestStore(t)), http.MethodGet, "/api/giftcodes/"+url.PathEscape("原神"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[giftCodeDetailResponse](t, rec)

	assert.Equal(t, "giftcodesbanner/原神-禮包碼.jpg", resp.Banner)
	assert.Equal(t, "<p>提瓦特大陸冒險</p>", resp.Description)
	assert.Equal(t, []string{"打開遊戲", "點擊 <strong>設定</strong>"}, resp.HowTo)
	assert.Equal(t, []catalog.GiftCode{{Code: "GENSHINGIFT", Reward: "原石 x60"}}, resp.Codes)
	assert.Empty(t, resp.CodesMessage)
}

func TestGiftCodeDetailErrors(t *testing.T) {
	rec := do(t, newTestRouter(newTestStore(t)), http.MethodGet, "/api/giftcodes/"+url.PathEscape("不存在"), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "❌ 找不到 不存在 的禮包碼資料。", decode[map[string]any](t, rec)["message"])

	rec = do(t, newTestRouter(newFailingStore()), http.MethodGet, "/api/giftcodes/x", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "載入遊戲資料失敗，請稍後再試。", decode[map[string]any](t, rec)["message"])

	rec = do(t, newTestRouter(newFailingStore()), http.MethodGet, "/api/giftcodes", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
