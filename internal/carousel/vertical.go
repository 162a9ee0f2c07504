package carousel

// VerticalConfig tunes a vertical strip. Zero values use the package defaults;
// a negative MaxTilings disables trimming.
type VerticalConfig struct {
	Multiplier int
	Threshold  float64
	CardHeight float64
	MaxTilings int
}

func (c VerticalConfig) withDefaults() VerticalConfig {
	if c.Multiplier <= 0 {
		c.Multiplier = VerticalMultiplier
	}
	if c.Threshold <= 0 {
		c.Threshold = ScrollThreshold
	}
	if c.CardHeight <= 0 {
		c.CardHeight = CardHeight
	}
	if c.MaxTilings == 0 {
		c.MaxTilings = VerticalMaxTilings
	}
	return c
}

// ScrollMetrics is the viewport geometry reported by a scroll event.
type ScrollMetrics struct {
	ScrollTop    float64 `json:"scrollTop"`
	ScrollHeight float64 `json:"scrollHeight"`
	ClientHeight float64 `json:"clientHeight"`
}

// Vertical is the scroll-driven strip used on narrow viewports. It has no
// cursor; its position is the scroll offset of the containing viewport.
type Vertical struct {
	cfg      VerticalConfig
	renderer Renderer
	surface  Surface

	extended []Item
	cards    []Card
	heights  []float64
}

// NewVertical constructs an empty strip. A nil surface discards mutations.
func NewVertical(renderer Renderer, surface Surface, cfg VerticalConfig) *Vertical {
	if renderer == nil {
		renderer = LinkRenderer{}
	}
	if surface == nil {
		surface = discardSurface{}
	}
	return &Vertical{cfg: cfg.withDefaults(), renderer: renderer, surface: surface}
}

// Initialize tiles chunk into the extended set and renders it once.
func (v *Vertical) Initialize(chunk []Item) error {
	if len(chunk) == 0 {
		return ErrEmptyChunk
	}
	v.extended = Tile(chunk, v.cfg.Multiplier)
	v.cards = make([]Card, 0, len(v.extended))
	v.heights = make([]float64, 0, len(v.extended))
	for _, item := range v.extended {
		card := v.renderer.CreateCard(item)
		v.cards = append(v.cards, card)
		v.heights = append(v.heights, v.height(v.surface.InsertAfter(card)))
	}
	return nil
}

// OnScroll refills the strip near either edge and returns the scroll offset
// the viewport must adopt. Prepending adds each inserted card's height to the
// offset as it is inserted, so the content in view does not move.
func (v *Vertical) OnScroll(m ScrollMetrics) (float64, error) {
	if len(v.extended) == 0 {
		return m.ScrollTop, ErrNotInitialized
	}
	scrollTop := m.ScrollTop

	if m.ScrollTop+m.ClientHeight >= m.ScrollHeight-v.cfg.Threshold {
		for _, item := range v.extended {
			card := v.renderer.CreateCard(item)
			v.cards = append(v.cards, card)
			v.heights = append(v.heights, v.height(v.surface.InsertAfter(card)))
		}
		scrollTop -= v.trim(Front)
	}

	if m.ScrollTop <= v.cfg.Threshold {
		n := len(v.extended)
		freshCards := make([]Card, n)
		freshHeights := make([]float64, n)
		for i := n - 1; i >= 0; i-- {
			card := v.renderer.CreateCard(v.extended[i])
			h := v.height(v.surface.InsertBefore(card))
			freshCards[i] = card
			freshHeights[i] = h
			scrollTop += h
		}
		v.cards = append(freshCards, v.cards...)
		v.heights = append(freshHeights, v.heights...)
		v.trim(Back)
	}

	if scrollTop < 0 {
		scrollTop = 0
	}
	return scrollTop, nil
}

// trim drops whole cards beyond the tiling bound from edge and returns the
// height removed.
func (v *Vertical) trim(edge Edge) float64 {
	if v.cfg.MaxTilings < 0 {
		return 0
	}
	excess := len(v.cards) - len(v.extended)*v.cfg.MaxTilings
	if excess <= 0 {
		return 0
	}
	var removed float64
	if edge == Front {
		for _, h := range v.heights[:excess] {
			removed += h
			v.surface.Remove(Front)
		}
		v.cards = append([]Card(nil), v.cards[excess:]...)
		v.heights = append([]float64(nil), v.heights[excess:]...)
		return removed
	}
	keep := len(v.cards) - excess
	for _, h := range v.heights[keep:] {
		removed += h
		v.surface.Remove(Back)
	}
	v.cards = v.cards[:keep]
	v.heights = v.heights[:keep]
	return removed
}

func (v *Vertical) height(measured float64) float64 {
	if measured > 0 {
		return measured
	}
	return v.cfg.CardHeight
}

// Len returns the number of live cards.
func (v *Vertical) Len() int { return len(v.cards) }

// ExtendedLength returns the size of one refill unit.
func (v *Vertical) ExtendedLength() int { return len(v.extended) }

// Cards returns a copy of the strip.
func (v *Vertical) Cards() []Card { return append([]Card(nil), v.cards...) }

// Position returns the top of card i measured from the top of the strip.
func (v *Vertical) Position(i int) float64 {
	var y float64
	for _, h := range v.heights[:min(i, len(v.heights))] {
		y += h
	}
	return y
}

// ContentHeight returns the total height of the strip.
func (v *Vertical) ContentHeight() float64 {
	return v.Position(len(v.heights))
}
