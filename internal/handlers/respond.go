package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/httpx"
	"github.com/diva3322/SSBuy-web/internal/i18n"
	"github.com/diva3322/SSBuy-web/internal/requestctx"
)

// messages resolves the visitor language and the fallback texts shown in
// place of content that failed to load.
type messages struct {
	bundle *i18n.Bundle
}

func newMessages(bundle *i18n.Bundle) messages {
	if bundle == nil {
		bundle = i18n.Default()
	}
	return messages{bundle: bundle}
}

func (m messages) lang(r *http.Request) string {
	return m.bundle.Resolve(r.Header.Get("Accept-Language"))
}

func (m messages) t(r *http.Request, key string, args ...any) string {
	if len(args) == 0 {
		return m.bundle.T(m.lang(r), key)
	}
	return m.bundle.Tf(m.lang(r), key, args...)
}

// writeCatalogError maps catalog failures onto the error envelope: missing
// entries are 404 and everything else is a 503 carrying the fallback text.
func (m messages) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, unavailable, notFound string, details map[string]any) {
	ctx := r.Context()
	if isNotFound(err) {
		httpx.WriteError(ctx, w, httpx.NewError("not_found", notFound, http.StatusNotFound).WithDetails(details))
		return
	}
	requestctx.Logger(ctx).Error("catalog unavailable", zap.Error(err))
	httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", m.t(r, unavailable), http.StatusServiceUnavailable).WithDetails(details))
}

func isNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound)
}

func (m messages) writeInvalid(w http.ResponseWriter, r *http.Request, err error) {
	requestctx.Logger(r.Context()).Debug("invalid request", zap.Error(err))
	httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", m.t(r, "request.invalid"), http.StatusBadRequest))
}

// nameParam returns the decoded {name} path segment. chi matches against the
// raw path when it differs from the decoded one, so escaped slashes and the
// like arrive still encoded.
func nameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
	}
	return strings.TrimSpace(name)
}

func latestGames(ctx context.Context, store *catalog.Store, n int) []gameCard {
	set, err := store.Games(ctx)
	if err != nil {
		requestctx.Logger(ctx).Warn("latest games unavailable", zap.Error(err))
		return []gameCard{}
	}
	return gameCards(set.Latest(n))
}
