package carousel

import (
	"github.com/diva3322/SSBuy-web/internal/nav"
)

// DefaultImage replaces card images that fail to load.
const DefaultImage = "images/default.jpg"

// Renderer turns an item into a card.
type Renderer interface {
	CreateCard(item Item) Card
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Item) Card

// CreateCard implements Renderer.
func (f RendererFunc) CreateCard(item Item) Card { return f(item) }

// LinkRenderer builds clickable cards that link to the game detail page.
type LinkRenderer struct {
	FallbackImageURL string
}

// CreateCard implements Renderer. The navigation target is always derived
// from the item name, never copied from another card.
func (r LinkRenderer) CreateCard(item Item) Card {
	fallback := r.FallbackImageURL
	if fallback == "" {
		fallback = DefaultImage
	}
	img := item.ImageURL
	if img == "" {
		img = fallback
	}
	return Card{
		Item:             item,
		Title:            item.Name,
		Href:             nav.GameURL(item.Name),
		ImageURL:         img,
		FallbackImageURL: fallback,
	}
}

// Edge names one end of a strip.
type Edge int

const (
	Front Edge = iota
	Back
)

func (e Edge) String() string {
	if e == Front {
		return "front"
	}
	return "back"
}

// Surface is the display a strip is attached to. Insert methods return the
// rendered height of the inserted card; surfaces without layout return 0 and
// the strip falls back to its configured card height.
type Surface interface {
	InsertBefore(card Card) float64
	InsertAfter(card Card) float64
	Remove(edge Edge)
}

// Translator is implemented by surfaces that can shift a horizontal strip.
type Translator interface {
	Translate(offset float64)
}

type discardSurface struct{}

func (discardSurface) InsertBefore(Card) float64 { return 0 }
func (discardSurface) InsertAfter(Card) float64  { return 0 }
func (discardSurface) Remove(Edge)               {}

// OpKind identifies a recorded surface operation.
type OpKind string

const (
	OpInsertBefore OpKind = "insertBefore"
	OpInsertAfter  OpKind = "insertAfter"
	OpRemove       OpKind = "remove"
	OpTranslate    OpKind = "translate"
)

// Op is one surface mutation that a browser replays against its DOM.
type Op struct {
	Kind      OpKind `json:"op"`
	Card      *Card  `json:"card,omitempty"`
	Edge      string `json:"edge,omitempty"`
	Transform string `json:"transform,omitempty"`
}

// Recorder is a Surface that records mutations instead of applying them.
// Consecutive removals are kept as separate ops so replay stays trivial.
type Recorder struct {
	// CardHeight is reported for every inserted card.
	CardHeight float64

	ops []Op
}

// InsertBefore implements Surface.
func (r *Recorder) InsertBefore(card Card) float64 {
	c := card
	r.ops = append(r.ops, Op{Kind: OpInsertBefore, Card: &c})
	return r.CardHeight
}

// InsertAfter implements Surface.
func (r *Recorder) InsertAfter(card Card) float64 {
	c := card
	r.ops = append(r.ops, Op{Kind: OpInsertAfter, Card: &c})
	return r.CardHeight
}

// Remove implements Surface.
func (r *Recorder) Remove(edge Edge) {
	r.ops = append(r.ops, Op{Kind: OpRemove, Edge: edge.String()})
}

// Translate implements Translator.
func (r *Recorder) Translate(offset float64) {
	r.ops = append(r.ops, Op{Kind: OpTranslate, Transform: TranslateX(offset)})
}

// Flush returns the recorded ops and resets the recorder.
func (r *Recorder) Flush() []Op {
	ops := r.ops
	r.ops = nil
	if ops == nil {
		return []Op{}
	}
	return ops
}
