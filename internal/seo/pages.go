package seo

import (
	"fmt"

	"github.com/diva3322/SSBuy-web/internal/nav"
)

// GameStatus describes the outcome of a game detail lookup.
type GameStatus int

const (
	GameFound GameStatus = iota
	GameMissing
	GameLoadFailed
	GameUnnamed
)

// Home returns the metadata of the landing page.
func Home() Meta {
	m := Build(KindIndex, nav.HomePage,
		"",
		SiteName+" - 專業遊戲代儲平台",
		SiteName+"，提供最安全、快速、優惠的遊戲代儲服務，支援多款熱門手遊，立即體驗！")
	m.JSONLD = []map[string]any{
		Organization(SiteName, SiteURL, SiteURL+"logo.png"),
		WebSite(SiteName, SiteURL, SiteURL+nav.AllGamesPage+"?q="),
	}
	return m
}

// AllGames returns the metadata of the full game listing.
func AllGames() Meta {
	return Build(KindAllGames, nav.AllGamesPage, "",
		"所有遊戲 - "+SiteName,
		"探索速速幫你儲手遊平台所有支援的熱門手遊列表，輕鬆找到您想儲值的遊戲。")
}

// NewGames returns the metadata of the newest games listing.
func NewGames() Meta {
	return Build(KindNewGames, nav.NewGamesPage, "",
		"新上遊戲 - "+SiteName,
		"瀏覽速速幫你儲手遊最新上架的遊戲，不錯過任何熱門手遊儲值優惠！")
}

// GameDetail returns the metadata of a game detail page for the given lookup
// outcome.
func GameDetail(name string, status GameStatus) Meta {
	var title, desc string
	switch {
	case name == "" || status == GameUnnamed:
		title, desc = "未提供遊戲名稱 - "+SiteName, "請透過遊戲列表選擇您想要儲值的遊戲。"
	case status == GameMissing:
		title, desc = "遊戲不存在 - "+SiteName, "抱歉，您請求的遊戲不存在或已下架。"
	case status == GameLoadFailed:
		title, desc = "載入失敗 - "+SiteName, "抱歉，載入遊戲資料失敗，請稍後再試。"
	default:
		title = fmt.Sprintf("%s 代儲值 - %s", name, SiteName)
		desc = fmt.Sprintf("速速幫你儲為您提供%s最安全、快速的代儲值服務，獨享優惠價格，立即體驗！", name)
	}
	return Build(KindGameDetail, nav.GameDetailPage, name, title, desc)
}

// GiftCodeDetail returns the metadata of a game's gift code page.
func GiftCodeDetail(name string) Meta {
	return Build(KindGiftCodeDetail, nav.GiftCodePage, name,
		fmt.Sprintf("%s 最新禮包碼|兌換碼|序號|免費領取 - %s", name, SiteName),
		fmt.Sprintf("獲取%s最新的禮包碼、兌換碼、序號，免費領取豐厚遊戲獎勵，立即提升戰力！", name))
}

// GiftCodeOverview returns the metadata of the gift code overview.
func GiftCodeOverview() Meta {
	return Build(KindGiftCodeOverview, nav.GiftCodeOverview, "",
		"好康兌換 - SSBUY",
		"SSBUY提供多款熱門手遊的最新禮包碼兌換資訊，輕鬆查找、立即領取豐厚獎勵！")
}

// Static returns the metadata of a page whose copy lives in its own markup.
// Only the canonical URL, keywords and share image are derived.
func Static(page, title, description string) Meta {
	return Build(KindForPage(page), page, "", title, description)
}

// Breadcrumbs returns the BreadcrumbList schema of a page, mirroring the
// breadcrumb trail shown in the page header.
func Breadcrumbs(page, game string) map[string]any {
	crumbs := nav.Breadcrumbs(page, game)
	items := make([]BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, BreadcrumbItem{Name: c.Label, Item: SiteURL + c.Href})
	}
	return BreadcrumbList(items)
}
