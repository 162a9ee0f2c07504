package carousel

import "fmt"

// HorizontalConfig tunes a horizontal strip. Zero values use the package defaults.
type HorizontalConfig struct {
	VisibleCards int
	CardWidth    float64
	Multiplier   int
	MaxTilings   int
}

func (c HorizontalConfig) withDefaults() HorizontalConfig {
	if c.VisibleCards <= 0 {
		c.VisibleCards = VisibleCards
	}
	if c.CardWidth <= 0 {
		c.CardWidth = CardWidth
	}
	if c.Multiplier <= 0 {
		c.Multiplier = HorizontalMultiplier
	}
	if c.MaxTilings <= 0 {
		c.MaxTilings = HorizontalMaxTilings
	}
	return c
}

// Horizontal is the button-driven strip. Its cursor is an index into the
// card sequence and the matching translation offset.
type Horizontal struct {
	cfg      HorizontalConfig
	renderer Renderer
	surface  Surface

	cards          []Card
	index          int
	offset         float64
	originalLength int
	maxCards       int
}

// NewHorizontal constructs an empty strip. A nil surface discards mutations.
func NewHorizontal(renderer Renderer, surface Surface, cfg HorizontalConfig) *Horizontal {
	if renderer == nil {
		renderer = LinkRenderer{}
	}
	if surface == nil {
		surface = discardSurface{}
	}
	return &Horizontal{cfg: cfg.withDefaults(), renderer: renderer, surface: surface}
}

// Initialize tiles chunk into the strip and centers the cursor on it. Short
// chunks are tiled more often so the visible window is always filled.
func (h *Horizontal) Initialize(chunk []Item) error {
	if len(chunk) == 0 {
		return ErrEmptyChunk
	}
	tilings := h.cfg.Multiplier
	if need := ceilDiv(h.cfg.VisibleCards, len(chunk)); need > tilings {
		tilings = need
	}

	h.originalLength = len(chunk)
	h.maxCards = len(chunk) * max(h.cfg.MaxTilings, tilings)
	h.cards = make([]Card, 0, len(chunk)*tilings)
	for _, item := range Tile(chunk, tilings) {
		card := h.renderer.CreateCard(item)
		h.cards = append(h.cards, card)
		h.surface.InsertAfter(card)
	}

	h.index = max(0, floorDiv(len(chunk)-h.cfg.VisibleCards, 2))
	h.offset = float64(h.index) * h.cfg.CardWidth
	h.translate()
	return nil
}

// MoveSlide shifts the cursor by one card and recycles cards at the edge
// being approached so the visitor can keep moving in either direction.
func (h *Horizontal) MoveSlide(direction int) error {
	if h.originalLength == 0 {
		return ErrNotInitialized
	}
	if direction != 1 && direction != -1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDirection, direction)
	}

	h.offset += float64(direction) * h.cfg.CardWidth
	h.index += direction

	if direction > 0 {
		if h.index >= len(h.cards)-h.cfg.VisibleCards-1 {
			h.appendTiling()
		}
	} else if h.index < 1 {
		h.prependTiling()
		h.index += h.originalLength
		h.offset += float64(h.originalLength) * h.cfg.CardWidth
	}

	if excess := len(h.cards) - h.maxCards; excess > 0 {
		if direction > 0 {
			for i := 0; i < excess; i++ {
				h.surface.Remove(Front)
			}
			h.cards = append([]Card(nil), h.cards[excess:]...)
			h.index -= excess
			h.offset -= float64(excess) * h.cfg.CardWidth
		} else {
			for i := 0; i < excess; i++ {
				h.surface.Remove(Back)
			}
			h.cards = h.cards[:len(h.cards)-excess]
		}
	}

	h.translate()
	return nil
}

// appendTiling rebuilds the first tiling unit from its items and appends it.
func (h *Horizontal) appendTiling() {
	src := h.cards[:h.originalLength]
	fresh := make([]Card, 0, len(src))
	for _, c := range src {
		card := h.renderer.CreateCard(c.Item)
		fresh = append(fresh, card)
		h.surface.InsertAfter(card)
	}
	h.cards = append(h.cards, fresh...)
}

// prependTiling rebuilds the last tiling unit and inserts it at the front one
// card at a time, last card first, so the unit keeps its order.
func (h *Horizontal) prependTiling() {
	src := h.cards[len(h.cards)-h.originalLength:]
	fresh := make([]Card, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		card := h.renderer.CreateCard(src[i].Item)
		fresh[i] = card
		h.surface.InsertBefore(card)
	}
	h.cards = append(fresh, h.cards...)
}

func (h *Horizontal) translate() {
	if t, ok := h.surface.(Translator); ok {
		t.Translate(h.offset)
	}
}

// Index returns the cursor index.
func (h *Horizontal) Index() int { return h.index }

// Offset returns the translation offset in pixels.
func (h *Horizontal) Offset() float64 { return h.offset }

// Transform returns the CSS transform for the current offset.
func (h *Horizontal) Transform() string { return TranslateX(h.offset) }

// Len returns the number of live cards.
func (h *Horizontal) Len() int { return len(h.cards) }

// OriginalLength returns the size of one tiling unit.
func (h *Horizontal) OriginalLength() int { return h.originalLength }

// Cards returns a copy of the strip.
func (h *Horizontal) Cards() []Card { return append([]Card(nil), h.cards...) }

// Visible returns the cards inside the viewport window.
func (h *Horizontal) Visible() []Card {
	start := max(0, h.index)
	end := min(len(h.cards), start+h.cfg.VisibleCards)
	if start >= end {
		return nil
	}
	return append([]Card(nil), h.cards[start:end]...)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// floorDiv rounds toward negative infinity like Math.floor.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
