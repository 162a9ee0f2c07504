// Package carousel implements the infinite-loop game card strips shown on the
// home page. A strip is built by tiling a base chunk of items several times
// and is extended or trimmed as the visitor moves, so scrolling never reaches
// an edge while the number of live cards stays bounded.
//
// The engine is synchronous and not safe for concurrent use; callers that
// share a strip across goroutines must serialize access (see Board).
package carousel

import (
	"errors"
	"strconv"
)

const (
	// VisibleCards is the number of cards shown at once by a horizontal strip.
	VisibleCards = 5
	// CardWidth is the fixed width of one horizontal card in pixels.
	CardWidth = 220.0
	// CardHeight is the fallback height of one vertical card when the
	// surface cannot measure rendered cards.
	CardHeight = 180.0
	// MobileBreakpoint is the widest viewport that still gets the vertical strip.
	MobileBreakpoint = 1024

	// HorizontalMultiplier is how many times the chunk is tiled on initialize.
	HorizontalMultiplier = 3
	// HorizontalMaxTilings bounds the horizontal strip to this many chunks.
	HorizontalMaxTilings = 5
	// VerticalMultiplier is how many times the chunk is tiled into the extended set.
	VerticalMultiplier = 10
	// VerticalMaxTilings bounds the vertical strip to this many extended sets.
	VerticalMaxTilings = 3
	// ScrollThreshold is the distance in pixels from an edge that triggers a refill.
	ScrollThreshold = 10.0
)

var (
	// ErrEmptyChunk is returned when a strip is initialized without items.
	ErrEmptyChunk = errors.New("carousel: empty chunk")
	// ErrEmptyCatalog is returned when chunks are requested from an empty catalog.
	ErrEmptyCatalog = errors.New("carousel: empty catalog")
	// ErrInvalidDirection is returned by MoveSlide for anything but -1 or +1.
	ErrInvalidDirection = errors.New("carousel: direction must be -1 or +1")
	// ErrNotInitialized is returned when a strip is used before Initialize.
	ErrNotInitialized = errors.New("carousel: strip not initialized")
	// ErrUnknownRow is returned when a board row index is out of range.
	ErrUnknownRow = errors.New("carousel: unknown row")
	// ErrWrongMode is returned when a row receives an event of the other variant.
	ErrWrongMode = errors.New("carousel: event does not match strip mode")
)

// Item is one catalog entry shown on a card.
type Item struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Card is a disposable render artifact built from an Item by value.
type Card struct {
	Item             Item   `json:"item"`
	Title            string `json:"title"`
	Href             string `json:"href"`
	ImageURL         string `json:"imageUrl"`
	FallbackImageURL string `json:"fallbackImageUrl,omitempty"`
}

// Mode selects the strip variant.
type Mode string

const (
	ModeHorizontal Mode = "horizontal"
	ModeVertical   Mode = "vertical"
)

// ModeForWidth returns the strip variant for a viewport width in logical pixels.
func ModeForWidth(width int) Mode {
	if width <= MobileBreakpoint {
		return ModeVertical
	}
	return ModeHorizontal
}

// ParseMode parses a mode name. Unknown or empty names report false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeHorizontal:
		return ModeHorizontal, true
	case ModeVertical:
		return ModeVertical, true
	}
	return "", false
}

// TranslateX formats a horizontal offset as a CSS transform.
func TranslateX(offset float64) string {
	return "translateX(-" + strconv.FormatFloat(offset, 'f', -1, 64) + "px)"
}
