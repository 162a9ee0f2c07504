package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diva3322/SSBuy-web/internal/carousel"
	"github.com/diva3322/SSBuy-web/internal/httpx"
	"github.com/diva3322/SSBuy-web/internal/i18n"
)

// CarouselHandlers builds home page carousel boards and relays visitor
// events to them.
type CarouselHandlers struct {
	provider carousel.Provider
	registry *carousel.Registry
	shuffler carousel.Shuffler
	renderer carousel.Renderer
	msgs     messages
}

// CarouselOption customises CarouselHandlers.
type CarouselOption func(*CarouselHandlers)

// WithCarouselShuffler fixes the order chunks are cut in.
func WithCarouselShuffler(s carousel.Shuffler) CarouselOption {
	return func(h *CarouselHandlers) { h.shuffler = s }
}

// WithCarouselRenderer overrides how cards are built.
func WithCarouselRenderer(r carousel.Renderer) CarouselOption {
	return func(h *CarouselHandlers) { h.renderer = r }
}

// NewCarouselHandlers constructs carousel handlers.
func NewCarouselHandlers(provider carousel.Provider, registry *carousel.Registry, bundle *i18n.Bundle, opts ...CarouselOption) *CarouselHandlers {
	if registry == nil {
		registry = carousel.NewRegistry()
	}
	h := &CarouselHandlers{
		provider: provider,
		registry: registry,
		msgs:     newMessages(bundle),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes registers carousel endpoints under the provided router.
func (h *CarouselHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/carousels", h.createBoard)
	r.Delete("/carousels/{id}", h.deleteBoard)
	r.Post("/carousels/{id}/rows/{row}/move", h.move)
	r.Post("/carousels/{id}/rows/{row}/scroll", h.scroll)
}

type createBoardRequest struct {
	Mode  string `json:"mode"`
	Width int    `json:"width"`
}

type boardResponse struct {
	ID       string              `json:"id,omitempty"`
	Mode     carousel.Mode       `json:"mode"`
	Fallback string              `json:"fallback,omitempty"`
	Rows     []carousel.RowPatch `json:"rows"`
}

type moveRequest struct {
	Direction int `json:"direction"`
}

func (h *CarouselHandlers) createBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createBoardRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.msgs.writeInvalid(w, r, err)
		return
	}

	mode, ok := carousel.ParseMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	if !ok {
		mode = carousel.ModeHorizontal
		if req.Width > 0 {
			mode = carousel.ModeForWidth(req.Width)
		}
	}

	board := carousel.NewBoard(ctx, h.provider, carousel.BoardOptions{
		Mode:     mode,
		Renderer: h.renderer,
		Shuffler: h.shuffler,
		Fallback: h.msgs.t(r, "carousel.unavailable"),
	})
	resp := boardResponse{Mode: board.Mode, Fallback: board.Fallback, Rows: board.Snapshot()}
	if board.Rows() == 0 {
		httpx.WriteJSON(w, http.StatusOK, resp)
		return
	}
	resp.ID = h.registry.Add(board)
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (h *CarouselHandlers) deleteBoard(w http.ResponseWriter, r *http.Request) {
	if !h.registry.Remove(chi.URLParam(r, "id")) {
		writeBoardNotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CarouselHandlers) move(w http.ResponseWriter, r *http.Request) {
	board, row, ok := h.target(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.msgs.writeInvalid(w, r, err)
		return
	}
	patch, err := board.Move(row, req.Direction)
	if err != nil {
		writeBoardError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, patch)
}

func (h *CarouselHandlers) scroll(w http.ResponseWriter, r *http.Request) {
	board, row, ok := h.target(w, r)
	if !ok {
		return
	}
	var req carousel.ScrollMetrics
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.msgs.writeInvalid(w, r, err)
		return
	}
	patch, err := board.Scroll(row, req)
	if err != nil {
		writeBoardError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, patch)
}

func (h *CarouselHandlers) target(w http.ResponseWriter, r *http.Request) (*carousel.Board, int, bool) {
	ctx := r.Context()
	board, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		writeBoardNotFound(w, r)
		return nil, 0, false
	}
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_row", "row must be an integer", http.StatusBadRequest))
		return nil, 0, false
	}
	return board, row, true
}

func writeBoardNotFound(w http.ResponseWriter, r *http.Request) {
	httpx.WriteError(r.Context(), w, httpx.NewError("carousel_not_found", "carousel expired or unknown", http.StatusNotFound))
}

func writeBoardError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, carousel.ErrUnknownRow):
		httpx.WriteError(ctx, w, httpx.NewError("row_not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, carousel.ErrInvalidDirection):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_direction", err.Error(), http.StatusBadRequest))
	case errors.Is(err, carousel.ErrWrongMode):
		httpx.WriteError(ctx, w, httpx.NewError("wrong_mode", err.Error(), http.StatusConflict))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("carousel_error", err.Error(), http.StatusInternalServerError))
	}
}
