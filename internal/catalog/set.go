package catalog

import (
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/diva3322/SSBuy-web/internal/carousel"
)

// GameSet is the decoded games.json in file order.
type GameSet struct {
	order []string
	games map[string]Game
}

func newGameSet() *GameSet {
	return &GameSet{games: make(map[string]Game)}
}

// NewGameSet builds a set from games in the given order. Later duplicates
// replace earlier ones in place.
func NewGameSet(games ...Game) *GameSet {
	s := newGameSet()
	for _, g := range games {
		s.put(g)
	}
	return s
}

func (s *GameSet) put(g Game) {
	if _, ok := s.games[g.Name]; !ok {
		s.order = append(s.order, g.Name)
	}
	s.games[g.Name] = g
}

// Put adds or replaces a game. New games are appended.
func (s *GameSet) Put(g Game) { s.put(g) }

// Len returns the number of games.
func (s *GameSet) Len() int { return len(s.order) }

// Names returns the game names in file order.
func (s *GameSet) Names() []string { return append([]string(nil), s.order...) }

// Lookup returns the named game.
func (s *GameSet) Lookup(name string) (Game, bool) {
	g, ok := s.games[name]
	return g, ok
}

// All returns every game in file order.
func (s *GameSet) All() []Game {
	out := make([]Game, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.games[name])
	}
	return out
}

// Latest returns the last n games in file order, newest first.
func (s *GameSet) Latest(n int) []Game {
	if n <= 0 || n > len(s.order) {
		n = len(s.order)
	}
	out := make([]Game, 0, n)
	for i := len(s.order) - 1; i >= len(s.order)-n; i-- {
		out = append(out, s.games[s.order[i]])
	}
	return out
}

// Search returns the games whose name contains q, ignoring case, in file order.
func (s *GameSet) Search(q string) []Game {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s.All()
	}
	var out []Game
	for _, name := range s.order {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, s.games[name])
		}
	}
	return out
}

// Shuffle randomizes games in place with shuffler, or the global source when nil.
func Shuffle(games []Game, shuffler carousel.Shuffler) {
	swap := func(i, j int) { games[i], games[j] = games[j], games[i] }
	if shuffler == nil {
		rand.Shuffle(len(games), swap)
		return
	}
	shuffler.Shuffle(len(games), swap)
}

// Items returns the carousel items for every game in file order.
func (s *GameSet) Items() []carousel.Item {
	out := make([]carousel.Item, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, carousel.Item{Name: name, ImageURL: s.games[name].Logo})
	}
	return out
}

// GiftCodeSet is the decoded gift-codes-data.json in file order.
type GiftCodeSet struct {
	order []string
	games map[string]GiftCodeGame
}

func newGiftCodeSet() *GiftCodeSet {
	return &GiftCodeSet{games: make(map[string]GiftCodeGame)}
}

// NewGiftCodeSet builds a set from entries in the given order.
func NewGiftCodeSet(games ...GiftCodeGame) *GiftCodeSet {
	s := newGiftCodeSet()
	for _, g := range games {
		s.put(g)
	}
	return s
}

func (s *GiftCodeSet) put(g GiftCodeGame) {
	if _, ok := s.games[g.Name]; !ok {
		s.order = append(s.order, g.Name)
	}
	s.games[g.Name] = g
}

// Put adds or replaces an entry. New entries are appended.
func (s *GiftCodeSet) Put(g GiftCodeGame) { s.put(g) }

// Len returns the number of entries.
func (s *GiftCodeSet) Len() int { return len(s.order) }

// Names returns the entry names in file order.
func (s *GiftCodeSet) Names() []string { return append([]string(nil), s.order...) }

// Lookup returns the named entry.
func (s *GiftCodeSet) Lookup(name string) (GiftCodeGame, bool) {
	g, ok := s.games[name]
	return g, ok
}

// All returns every entry in file order.
func (s *GiftCodeSet) All() []GiftCodeGame {
	out := make([]GiftCodeGame, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.games[name])
	}
	return out
}

// Overview returns the entries whose name contains q, ignoring case, sorted
// by name with Traditional Chinese collation.
func (s *GiftCodeSet) Overview(q string) []GiftCodeGame {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []GiftCodeGame
	for _, name := range s.order {
		if q == "" || strings.Contains(strings.ToLower(name), q) {
			out = append(out, s.games[name])
		}
	}
	col := collate.New(language.TraditionalChinese)
	slices.SortStableFunc(out, func(a, b GiftCodeGame) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out
}
