package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/checkout"
	"github.com/diva3322/SSBuy-web/internal/httpx"
	"github.com/diva3322/SSBuy-web/internal/i18n"
)

// CheckoutHandlers totals product selections on the game detail page.
type CheckoutHandlers struct {
	store *catalog.Store
	msgs  messages
}

// NewCheckoutHandlers constructs checkout handlers backed by store.
func NewCheckoutHandlers(store *catalog.Store, bundle *i18n.Bundle) *CheckoutHandlers {
	return &CheckoutHandlers{store: store, msgs: newMessages(bundle)}
}

// Routes registers checkout endpoints under the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/checkout/total", h.total)
}

// checkoutTotalRequest selects products by list position through Indexes,
// or by name through Selected when Indexes is absent.
type checkoutTotalRequest struct {
	Game     string   `json:"game"`
	Selected []string `json:"selected"`
	Indexes  []int    `json:"indexes"`
}

func (h *CheckoutHandlers) total(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req checkoutTotalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.msgs.writeInvalid(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Game)
	if name == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", h.msgs.t(r, "game.unnamed"), http.StatusBadRequest))
		return
	}

	game, err := h.store.Game(ctx, name)
	if err != nil {
		h.msgs.writeCatalogError(w, r, err, "game.products_failed", h.msgs.t(r, "game.not_found"), nil)
		return
	}

	var summary checkout.Summary
	if req.Indexes != nil {
		summary, err = checkout.Select(game, name, req.Indexes)
	} else {
		summary, err = checkout.Total(game, name, req.Selected)
	}
	switch {
	case errors.Is(err, checkout.ErrUnknownProduct):
		httpx.WriteError(ctx, w, httpx.NewError("unknown_product", h.msgs.t(r, "checkout.unknown_product"), http.StatusUnprocessableEntity))
		return
	case errors.Is(err, checkout.ErrAmbiguousProduct):
		httpx.WriteError(ctx, w, httpx.NewError("ambiguous_product", h.msgs.t(r, "checkout.ambiguous_product"), http.StatusUnprocessableEntity))
		return
	case err != nil:
		httpx.WriteError(ctx, w, httpx.NewError("internal", h.msgs.t(r, "error.internal"), http.StatusInternalServerError))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}
