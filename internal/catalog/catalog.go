// Package catalog loads the storefront data files (games.json and
// gift-codes-data.json) and answers the queries the pages need. Both files
// are JSON objects keyed by game name; key order is significant (the newest
// games are the last keys) and is preserved by the decoder.
package catalog

import (
	"errors"
	"strings"
)

const (
	// GamesFile is the game catalog data file.
	GamesFile = "games.json"
	// GiftCodesFile is the gift-code data file.
	GiftCodesFile = "gift-codes-data.json"

	// MissingLink marks a social link the importer could not resolve.
	MissingLink = "N"
	// GiftCodeLink is the social link pointing at a game's gift-code page.
	GiftCodeLink = "禮包碼"
	// DefaultLogo replaces game logos that fail to load.
	DefaultLogo = "images/default.jpg"
	// DefaultBanner replaces gift-code banners that fail to load.
	DefaultBanner = "giftcodesbanner/default.jpg"
	// DefaultHowTo is shown when a game has no redemption steps.
	DefaultHowTo = "無特別說明，請參考遊戲內指引。"
	// DefaultGiftDescription is shown when a gift-code entry has no description.
	DefaultGiftDescription = "無遊戲簡介。"
	// NoCodesMessage is shown when a game has no public gift codes.
	NoCodesMessage = "目前沒有公開的禮包碼。"
	// NoProductsMessage is shown when a game has nothing for sale.
	NoProductsMessage = "目前沒有可購買的商品"
)

var (
	// ErrDataUnavailable reports that a data file could not be fetched or parsed.
	ErrDataUnavailable = errors.New("catalog: data unavailable")
	// ErrNotFound reports an unknown game name.
	ErrNotFound = errors.New("catalog: game not found")
)

// Product is one purchasable top-up package.
type Product struct {
	Name  string `json:"name" validate:"required"`
	Price int    `json:"price" validate:"gte=0"`
}

// SocialLink is one named external link of a game. Order matters: the
// detail page splits the list into two lines after the third link.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Href returns the link target, or "#" when the link is missing.
func (l SocialLink) Href() string {
	url := strings.TrimSpace(l.URL)
	if url == "" || url == MissingLink {
		return "#"
	}
	return url
}

// Game is one entry of games.json.
type Game struct {
	Name        string       `json:"name"`
	Logo        string       `json:"logo"`
	Products    []Product    `json:"products"`
	Social      []SocialLink `json:"social"`
	Description string       `json:"description,omitempty"`
	LastUpdated string       `json:"last_updated,omitempty"`
}

// SocialLines splits the social links into the two display lines.
func (g Game) SocialLines() (first, rest []SocialLink) {
	if len(g.Social) <= 3 {
		return g.Social, nil
	}
	return g.Social[:3], g.Social[3:]
}

// SocialURL returns the URL of the named link.
func (g Game) SocialURL(name string) (string, bool) {
	for _, l := range g.Social {
		if l.Name == name {
			return l.URL, true
		}
	}
	return "", false
}

// GiftCode is one redeemable code and its reward.
type GiftCode struct {
	Code   string `json:"code"`
	Reward string `json:"reward"`
}

// GiftCodeGame is one entry of gift-codes-data.json.
type GiftCodeGame struct {
	Name        string     `json:"name"`
	Banner      string     `json:"banner"`
	Description string     `json:"description"`
	HowTo       []string   `json:"howTo"`
	Codes       []GiftCode `json:"codes"`
}
