package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		page string
		game string
		want string
	}{
		{"home", KindIndex, "index.html", "", "https://www.ssbuy.tw/"},
		{"game detail keeps game", KindGameDetail, "game-detail.html", "天堂W", "https://www.ssbuy.tw/game-detail.html?game=%E5%A4%A9%E5%A0%82W"},
		{"game detail without game", KindGameDetail, "game-detail.html", "", "https://www.ssbuy.tw/game-detail.html"},
		{"gift detail encodes spaces", KindGiftCodeDetail, "gift-codes.html", "Arena Breakout", "https://www.ssbuy.tw/gift-codes.html?game=Arena%20Breakout"},
		{"overview fixed", KindGiftCodeOverview, "giftcodes-list.html", "ignored", "https://www.ssbuy.tw/giftcodes-list.html"},
		{"listing drops query", KindAllGames, "all-games.html", "x", "https://www.ssbuy.tw/all-games.html"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Canonical(tc.kind, tc.page, tc.game))
		})
	}
}

func TestKindForPage(t *testing.T) {
	assert.Equal(t, KindIndex, KindForPage(""))
	assert.Equal(t, KindIndex, KindForPage("/index.html"))
	assert.Equal(t, KindGiftCodeDetail, KindForPage("gift-codes.html"))
	assert.Equal(t, KindGiftCodeOverview, KindForPage("giftcodes-list.html"))
	assert.Equal(t, KindGameDetail, KindForPage("game-detail.html"))
	assert.Equal(t, Kind("contact"), KindForPage("contact.html"))
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, "速速幫你儲, 手遊儲值, 遊戲代儲, 手遊代儲, 最新遊戲, 熱門遊戲", Keywords(KindIndex, ""))
	assert.Equal(t,
		"速速幫你儲, 手遊儲值, 遊戲代儲, 手遊代儲, 天堂W, 遊戲儲值, 遊戲充值",
		Keywords(KindGameDetail, "天堂W 代儲值 - 速速幫你儲手遊"))
	assert.Equal(t,
		"速速幫你儲, 手遊儲值, 遊戲代儲, 手遊代儲, 原神, 禮包碼, 兌換碼, 序號, 免費領取",
		Keywords(KindGiftCodeDetail, "原神 最新禮包碼|兌換碼|序號|免費領取 - 速速幫你儲手遊"))
	assert.Equal(t, "速速幫你儲, 手遊儲值, 遊戲代儲, 手遊代儲", Keywords(KindGameDetail, ""))
	assert.Equal(t, "速速幫你儲, 手遊儲值, 遊戲代儲, 手遊代儲", Keywords("unknown", "x"))
	assert.Contains(t, Keywords("711pay", ""), "超商代碼繳費")
}

func TestGameDetail(t *testing.T) {
	m := GameDetail("天堂W", GameFound)
	assert.Equal(t, "天堂W 代儲值 - 速速幫你儲手遊", m.Title)
	assert.Equal(t, "速速幫你儲為您提供天堂W最安全、快速的代儲值服務，獨享優惠價格，立即體驗！", m.Description)
	assert.Equal(t, m.Canonical, m.OG.URL)
	assert.Equal(t, DefaultOGImage, m.OG.Image)
	assert.Equal(t, "article", m.OG.Type)

	assert.Equal(t, "遊戲不存在 - 速速幫你儲手遊", GameDetail("x", GameMissing).Title)
	assert.Equal(t, "載入失敗 - 速速幫你儲手遊", GameDetail("x", GameLoadFailed).Title)
	assert.Equal(t, "未提供遊戲名稱 - 速速幫你儲手遊", GameDetail("", GameFound).Title)
}

func TestPresets(t *testing.T) {
	home := Home()
	assert.Equal(t, "https://www.ssbuy.tw/", home.Canonical)
	require.Len(t, home.JSONLD, 2)
	assert.Equal(t, "Organization", home.JSONLD[0]["@type"])

	assert.Equal(t, "好康兌換 - SSBUY", GiftCodeOverview().Title)
	assert.Equal(t, "website", AllGames().OG.Type)
	assert.Equal(t, "https://www.ssbuy.tw/new-games.html", NewGames().Canonical)

	gift := GiftCodeDetail("原神")
	assert.Equal(t, "原神 最新禮包碼|兌換碼|序號|免費領取 - 速速幫你儲手遊", gift.Title)
	assert.Contains(t, gift.Keywords, "原神, 禮包碼")
}

func TestProductSchema(t *testing.T) {
	m := Product("天堂W", "desc", "https://www.ssbuy.tw/game-detail.html?game=x", "", []int{300, 150, 990})
	offers, ok := m["offers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "150", offers["lowPrice"])
	assert.Equal(t, "990", offers["highPrice"])
	assert.Equal(t, 3, offers["offerCount"])
	_, hasImage := m["image"]
	assert.False(t, hasImage)

	assert.NotContains(t, Product("x", "", "", "", nil), "offers")
}

func TestBreadcrumbsSchema(t *testing.T) {
	raw := JSON(Breadcrumbs("game-detail.html", "天堂W"))
	var decoded struct {
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
			Item     string `json:"item"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	require.Len(t, decoded.Items, 3)
	assert.Equal(t, "首頁", decoded.Items[0].Name)
	assert.Equal(t, "https://www.ssbuy.tw/index.html", decoded.Items[0].Item)
	assert.Equal(t, 3, decoded.Items[2].Position)
	assert.Equal(t, "天堂W", decoded.Items[2].Name)
}
