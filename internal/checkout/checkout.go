// Package checkout totals the products a visitor selects on a game page.
package checkout

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/format"
)

const (
	// EmptyLabel is shown in the order form when nothing is selected.
	EmptyLabel = "購買商品"
	// LabelSeparator joins the names of selected products.
	LabelSeparator = " + "
)

var (
	// ErrUnknownProduct is returned when a selection names a product the game
	// does not sell.
	ErrUnknownProduct = errors.New("checkout: unknown product")
	// ErrAmbiguousProduct is returned when a name selects products listed
	// with different prices; such products must be selected by index.
	ErrAmbiguousProduct = errors.New("checkout: ambiguous product name")
)

// Summary is the order form state for a selection.
type Summary struct {
	Game    string            `json:"game"`
	Items   []catalog.Product `json:"items"`
	Total   int               `json:"total"`
	Label   string            `json:"label"`
	Display string            `json:"display"`
}

// Select sums the products of game at the given positions in its product
// list, the way the checked boxes of the order form are summed. Items follow
// the list order and a position selected twice counts once.
func Select(game catalog.Game, gameName string, indexes []int) (Summary, error) {
	picked := slices.Clone(indexes)
	slices.Sort(picked)
	picked = slices.Compact(picked)

	items := make([]catalog.Product, 0, len(picked))
	for _, i := range picked {
		if i < 0 || i >= len(game.Products) {
			return Summary{}, fmt.Errorf("%w: index %d", ErrUnknownProduct, i)
		}
		items = append(items, game.Products[i])
	}
	return summarize(gameName, items), nil
}

// Total sums the selected products of game. Selections refer to products by
// name and keep the visitor's order; repeated names count once per mention.
// A name shared by products with different prices is rejected.
func Total(game catalog.Game, gameName string, selected []string) (Summary, error) {
	prices := make(map[string]int, len(game.Products))
	ambiguous := make(map[string]bool)
	for _, p := range game.Products {
		if price, ok := prices[p.Name]; ok {
			if price != p.Price {
				ambiguous[p.Name] = true
			}
			continue
		}
		prices[p.Name] = p.Price
	}

	items := make([]catalog.Product, 0, len(selected))
	for _, name := range selected {
		price, ok := prices[name]
		if !ok {
			return Summary{}, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
		}
		if ambiguous[name] {
			return Summary{}, fmt.Errorf("%w: %q", ErrAmbiguousProduct, name)
		}
		items = append(items, catalog.Product{Name: name, Price: price})
	}
	return summarize(gameName, items), nil
}

func summarize(gameName string, items []catalog.Product) Summary {
	s := Summary{Game: gameName, Items: items, Label: EmptyLabel}
	names := make([]string, 0, len(items))
	for _, p := range items {
		s.Total += p.Price
		names = append(names, p.Name)
	}
	if len(names) > 0 {
		s.Label = strings.Join(names, LabelSeparator)
	}
	s.Display = "結帳總金額: " + format.NTD(s.Total)
	return s
}
