// Package seo builds the per-page head metadata of the storefront: title,
// description, canonical URL, OpenGraph, keywords and JSON-LD payloads.
package seo

import (
	"strings"

	"github.com/diva3322/SSBuy-web/internal/nav"
)

const (
	// SiteURL is the canonical origin of the storefront.
	SiteURL = "https://www.ssbuy.tw/"
	// SiteName is the brand used in titles.
	SiteName = "速速幫你儲手遊"
	// DefaultOGImage is the share image for every page.
	DefaultOGImage = SiteURL + "logobanner.jpg"

	baseKeywords = "速速幫你儲, 手遊儲值, 遊戲代儲, 手遊代儲"
)

// Kind identifies a page for metadata purposes.
type Kind string

const (
	KindIndex            Kind = "index"
	KindAllGames         Kind = "all-games"
	KindNewGames         Kind = "new-games"
	KindGameDetail       Kind = "game-detail"
	KindGiftCodeDetail   Kind = "giftcodes-detail"
	KindGiftCodeOverview Kind = "giftcodes-list-overview"
	KindArticles         Kind = "articles"
)

// KindForPage maps a page file name to its Kind. Pages without special
// handling map to their base name.
func KindForPage(page string) Kind {
	page = strings.TrimPrefix(strings.TrimSpace(page), "/")
	switch page {
	case "", nav.HomePage:
		return KindIndex
	case nav.GiftCodePage:
		return KindGiftCodeDetail
	case nav.GiftCodeOverview:
		return KindGiftCodeOverview
	}
	return Kind(strings.TrimSuffix(page, ".html"))
}

// OpenGraph holds the og:* properties.
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Type        string `json:"type"`
}

// Meta is the head metadata of one page view.
type Meta struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Canonical   string           `json:"canonical"`
	Keywords    string           `json:"keywords"`
	OG          OpenGraph        `json:"og"`
	JSONLD      []map[string]any `json:"jsonLd,omitempty"`
}

// Build assembles Meta for a page. page is the file name (for example
// game-detail.html) and game the value of the game query parameter.
func Build(kind Kind, page, game, title, description string) Meta {
	canonical := Canonical(kind, page, game)
	ogType := "website"
	if kind == KindGameDetail || kind == KindArticles {
		ogType = "article"
	}
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Keywords:    Keywords(kind, title),
		OG: OpenGraph{
			Title:       title,
			Description: description,
			URL:         canonical,
			Image:       DefaultOGImage,
			Type:        ogType,
		},
	}
}

// Canonical returns the canonical URL of a page. Detail pages keep their
// game parameter, the overview and home page have fixed URLs and every other
// page drops its query.
func Canonical(kind Kind, page, game string) string {
	page = strings.TrimPrefix(strings.TrimSpace(page), "/")
	switch kind {
	case KindIndex:
		return SiteURL
	case KindGiftCodeOverview:
		return SiteURL + nav.GiftCodeOverview
	case KindGameDetail, KindGiftCodeDetail:
		if game != "" {
			return SiteURL + page + "?" + nav.GameQueryKey + "=" + nav.EncodeURIComponent(game)
		}
	}
	return SiteURL + page
}

var staticKeywords = map[Kind]string{
	KindIndex:              "最新遊戲, 熱門遊戲",
	KindAllGames:           "所有遊戲, 遊戲列表",
	KindNewGames:           "新上遊戲, 最新手遊",
	KindGiftCodeOverview:   "好康兌換, 禮包碼列表, 免費禮包碼, 遊戲兌換碼總覽",
	"purchase-guide":       "購買教學, 儲值教學, 手遊儲值步驟",
	"contact":              "聯絡客服, 客服中心, 聯絡我們",
	"disclaimer":           "免責聲明, 服務風險, 遊戲代儲風險",
	"terms-of-service":     "服務條款, 用戶協議, 代儲服務條款",
	"account-verification": "帳戶認證, 首次交易驗證, 帳號安全",
	"google-verify":        "Google 復原碼, Google 驗證, 帳號復原教學",
	"fb-verify":            "FB 安全碼, Facebook 驗證, 臉書雙重驗證",
	"711pay":               "超商代碼繳費, 7-11 繳費, 超商付款教學",
}

type titledKeywords struct {
	suffix string
	extra  string
}

var titleKeywords = map[Kind]titledKeywords{
	KindGameDetail:     {suffix: "代儲值 - " + SiteName, extra: "遊戲儲值, 遊戲充值"},
	KindGiftCodeDetail: {suffix: "最新禮包碼|兌換碼|序號|免費領取 - " + SiteName, extra: "禮包碼, 兌換碼, 序號, 免費領取"},
	KindArticles:       {suffix: " - SSbuy最安全的手遊代儲", extra: "遊戲攻略, 遊戲資訊"},
}

// Keywords returns the keywords meta content for a page. Detail pages add the
// subject taken from their title.
func Keywords(kind Kind, title string) string {
	if extra, ok := staticKeywords[kind]; ok {
		return baseKeywords + ", " + extra
	}
	if tk, ok := titleKeywords[kind]; ok && title != "" {
		subject := strings.TrimSpace(strings.Replace(title, tk.suffix, "", 1))
		return baseKeywords + ", " + subject + ", " + tk.extra
	}
	return baseKeywords
}
