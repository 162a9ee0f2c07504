package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/httpx"
	"github.com/diva3322/SSBuy-web/internal/nav"
	"github.com/diva3322/SSBuy-web/internal/seo"
)

// MetaHandlers serves the head metadata of any page.
type MetaHandlers struct {
	store *catalog.Store
}

// NewMetaHandlers constructs meta handlers. The store resolves whether a
// game detail page names a known game.
func NewMetaHandlers(store *catalog.Store) *MetaHandlers {
	return &MetaHandlers{store: store}
}

// Routes registers the metadata endpoint under the provided router.
func (h *MetaHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/meta", h.meta)
}

func (h *MetaHandlers) meta(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := path.Base("/" + strings.TrimSpace(q.Get("page")))
	if page == "/" || page == "." {
		page = nav.HomePage
	}
	game := strings.TrimSpace(q.Get(nav.GameQueryKey))

	var m seo.Meta
	switch kind := seo.KindForPage(page); kind {
	case seo.KindIndex:
		m = seo.Home()
	case seo.KindGameDetail:
		m = h.gameMeta(r, game)
	case seo.KindGiftCodeDetail:
		m = seo.GiftCodeDetail(game)
		m.JSONLD = append(m.JSONLD, seo.Breadcrumbs(page, game))
	default:
		switch kind {
		case seo.KindAllGames:
			m = seo.AllGames()
		case seo.KindNewGames:
			m = seo.NewGames()
		case seo.KindGiftCodeOverview:
			m = seo.GiftCodeOverview()
		default:
			m = seo.Static(page, seo.SiteName, "")
		}
		m.JSONLD = append(m.JSONLD, seo.Breadcrumbs(page, ""))
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *MetaHandlers) gameMeta(r *http.Request, name string) seo.Meta {
	if name == "" {
		return seo.GameDetail("", seo.GameUnnamed)
	}
	game, err := h.store.Game(r.Context(), name)
	switch {
	case err == nil:
		return gameMeta(game)
	case isNotFound(err):
		return seo.GameDetail(name, seo.GameMissing)
	default:
		return seo.GameDetail(name, seo.GameLoadFailed)
	}
}
