package nav

import (
	"net/url"
	"strings"
)

// Page file names shared by the static site and the JSON API.
const (
	HomePage         = "index.html"
	AllGamesPage     = "all-games.html"
	NewGamesPage     = "new-games.html"
	GameDetailPage   = "game-detail.html"
	GiftCodePage     = "gift-codes.html"
	GiftCodeOverview = "giftcodes-list.html"
	ArticlePage      = "articles.html"
)

// GameQueryKey is the query parameter every detail page reads the game name from.
const GameQueryKey = "game"

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "all-games.html"
	Label string
}

// RenderedItem is a view model for the page header.
type RenderedItem struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: HomePage, Label: "首頁"},
	{Path: AllGamesPage, Label: "所有遊戲"},
	{Path: NewGamesPage, Label: "新上遊戲"},
	{Path: GiftCodeOverview, Label: "好康兌換"},
	{Path: "purchase-guide.html", Label: "購買教學"},
	{Path: "contact.html", Label: "聯絡客服"},
}

// Build renders navigation items with active state given the current page.
func Build(currentPage string) []RenderedItem {
	currentPage = normalizePage(currentPage)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: it.Path == currentPage,
		})
	}
	return items
}

// Breadcrumbs builds breadcrumb entries for a page. Detail pages hang off
// their overview page and end with the game name.
func Breadcrumbs(currentPage, gameName string) []Crumb {
	currentPage = normalizePage(currentPage)
	crumbs := []Crumb{{Href: HomePage, Label: "首頁", Active: currentPage == HomePage}}
	if currentPage == HomePage {
		return crumbs
	}

	switch currentPage {
	case GameDetailPage:
		crumbs = append(crumbs, Crumb{Href: AllGamesPage, Label: labelFor(AllGamesPage)})
		if gameName != "" {
			crumbs = append(crumbs, Crumb{Href: GameURL(gameName), Label: gameName, Active: true})
		}
		return crumbs
	case GiftCodePage:
		crumbs = append(crumbs, Crumb{Href: GiftCodeOverview, Label: labelFor(GiftCodeOverview)})
		if gameName != "" {
			crumbs = append(crumbs, Crumb{Href: GiftCodeURL(gameName), Label: gameName, Active: true})
		}
		return crumbs
	}

	label := labelFor(currentPage)
	if label == "" {
		label = titleFromPage(currentPage)
	}
	return append(crumbs, Crumb{Href: currentPage, Label: label, Active: true})
}

// GameURL is the navigation target of a game card. Linked pages resolve the
// game through this exact format, so it must not change.
func GameURL(name string) string {
	return withGame(GameDetailPage, name)
}

// GiftCodeURL links to the gift-code detail page of a game.
func GiftCodeURL(name string) string {
	return withGame(GiftCodePage, name)
}

// ArticleURL links to the article page of a game.
func ArticleURL(name string) string {
	return withGame(ArticlePage, name)
}

func withGame(page, name string) string {
	return page + "?" + GameQueryKey + "=" + EncodeURIComponent(name)
}

// EncodeURIComponent escapes s the way browsers' encodeURIComponent does:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded and
// spaces become %20.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	if !strings.ContainsAny(escaped, "+%") {
		return escaped
	}
	return componentReplacer.Replace(escaped)
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func labelFor(page string) string {
	for _, it := range Main {
		if it.Path == page {
			return it.Label
		}
	}
	return ""
}

func normalizePage(page string) string {
	page = strings.TrimSpace(page)
	page = strings.TrimPrefix(page, "/")
	if i := strings.IndexAny(page, "?#"); i >= 0 {
		page = page[:i]
	}
	if page == "" {
		return HomePage
	}
	return page
}

func titleFromPage(page string) string {
	s := strings.TrimSuffix(page, ".html")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
