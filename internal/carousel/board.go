package carousel

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/requestctx"
)

// DefaultFallbackMessage is shown instead of the rows when the catalog cannot be loaded.
const DefaultFallbackMessage = "載入遊戲列表失敗，請稍後再試。"

// Provider supplies the catalog items a board is built from.
type Provider interface {
	LoadCatalog(ctx context.Context) ([]Item, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]Item, error)

// LoadCatalog implements Provider.
func (f ProviderFunc) LoadCatalog(ctx context.Context) ([]Item, error) { return f(ctx) }

// BoardOptions configures NewBoard.
type BoardOptions struct {
	Mode       Mode
	Renderer   Renderer
	Shuffler   Shuffler
	Horizontal HorizontalConfig
	Vertical   VerticalConfig
	Fallback   string
}

// Board is the set of carousel rows shown on one page view. All methods are
// safe for concurrent use; events on the same board run one at a time.
type Board struct {
	ID       string `json:"id"`
	Mode     Mode   `json:"mode"`
	Fallback string `json:"fallback,omitempty"`

	mu   sync.Mutex
	rows []*row
}

type row struct {
	recorder   *Recorder
	horizontal *Horizontal
	vertical   *Vertical
}

// RowPatch is the result of one row event: the surface ops to replay plus
// the strip state after the event.
type RowPatch struct {
	Row       int     `json:"row"`
	Ops       []Op    `json:"ops"`
	Len       int     `json:"len"`
	Index     int     `json:"index"`
	Offset    float64 `json:"offset"`
	Transform string  `json:"transform,omitempty"`
	ScrollTop float64 `json:"scrollTop,omitempty"`
}

// NewBoard loads the catalog, cuts it into chunks and initializes one row per
// chunk. It never fails: when the catalog is unavailable or empty the error is
// logged and the board carries the fallback message instead of rows.
func NewBoard(ctx context.Context, provider Provider, opts BoardOptions) *Board {
	logger := requestctx.Logger(ctx)
	mode := opts.Mode
	if _, ok := ParseMode(string(mode)); !ok {
		mode = ModeHorizontal
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = DefaultFallbackMessage
	}
	b := &Board{Mode: mode}

	items, err := provider.LoadCatalog(ctx)
	if err != nil {
		logger.Error("carousel catalog load failed", zap.Error(err))
		b.Fallback = fallback
		return b
	}
	chunks, err := BuildChunks(items, ChunkSize, ChunkCount, opts.Shuffler)
	if err != nil {
		logger.Warn("carousel catalog empty", zap.Error(err))
		b.Fallback = fallback
		return b
	}

	for _, chunk := range chunks {
		rec := &Recorder{CardHeight: opts.Vertical.withDefaults().CardHeight}
		r := &row{recorder: rec}
		if mode == ModeVertical {
			r.vertical = NewVertical(opts.Renderer, rec, opts.Vertical)
			err = r.vertical.Initialize(chunk)
		} else {
			r.horizontal = NewHorizontal(opts.Renderer, rec, opts.Horizontal)
			err = r.horizontal.Initialize(chunk)
		}
		if err != nil {
			logger.Error("carousel row init failed", zap.Error(err))
			b.rows = nil
			b.Fallback = fallback
			return b
		}
		b.rows = append(b.rows, r)
	}
	logger.Debug("carousel board built", zap.String("mode", string(mode)), zap.Int("rows", len(b.rows)))
	return b
}

// Rows returns the number of live rows.
func (b *Board) Rows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.rows)
}

// Snapshot returns every row with the ops recorded since the last event,
// which right after NewBoard is the initial render.
func (b *Board) Snapshot() []RowPatch {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RowPatch, 0, len(b.rows))
	for i, r := range b.rows {
		out = append(out, r.patch(i))
	}
	return out
}

// Move shifts a horizontal row by direction.
func (b *Board) Move(index, direction int) (RowPatch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.row(index)
	if err != nil {
		return RowPatch{}, err
	}
	if r.horizontal == nil {
		return RowPatch{}, ErrWrongMode
	}
	if err := r.horizontal.MoveSlide(direction); err != nil {
		r.recorder.Flush()
		return RowPatch{}, err
	}
	return r.patch(index), nil
}

// Scroll feeds a scroll event to a vertical row.
func (b *Board) Scroll(index int, m ScrollMetrics) (RowPatch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.row(index)
	if err != nil {
		return RowPatch{}, err
	}
	if r.vertical == nil {
		return RowPatch{}, ErrWrongMode
	}
	top, err := r.vertical.OnScroll(m)
	if err != nil {
		r.recorder.Flush()
		return RowPatch{}, err
	}
	p := r.patch(index)
	p.ScrollTop = top
	return p, nil
}

func (b *Board) row(index int) (*row, error) {
	if index < 0 || index >= len(b.rows) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRow, index)
	}
	return b.rows[index], nil
}

func (r *row) patch(index int) RowPatch {
	p := RowPatch{Row: index, Ops: r.recorder.Flush()}
	if r.horizontal != nil {
		p.Len = r.horizontal.Len()
		p.Index = r.horizontal.Index()
		p.Offset = r.horizontal.Offset()
		p.Transform = r.horizontal.Transform()
		return p
	}
	p.Len = r.vertical.Len()
	return p
}
