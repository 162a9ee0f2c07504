package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diva3322/SSBuy-web/internal/carousel"
	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/content"
	"github.com/diva3322/SSBuy-web/internal/httpx"
	"github.com/diva3322/SSBuy-web/internal/i18n"
	"github.com/diva3322/SSBuy-web/internal/nav"
	"github.com/diva3322/SSBuy-web/internal/seo"
)

const (
	defaultLatestLimit = 15
	maxLatestLimit     = 100
)

// GameHandlers serves the game listings and the game detail page data.
type GameHandlers struct {
	store    *catalog.Store
	shuffler carousel.Shuffler
	content  *content.Renderer
	msgs     messages
}

// GameOption customises GameHandlers.
type GameOption func(*GameHandlers)

// WithGameShuffler fixes the order of the all-games listing.
func WithGameShuffler(s carousel.Shuffler) GameOption {
	return func(h *GameHandlers) { h.shuffler = s }
}

// NewGameHandlers constructs game handlers backed by store.
func NewGameHandlers(store *catalog.Store, renderer *content.Renderer, bundle *i18n.Bundle, opts ...GameOption) *GameHandlers {
	if renderer == nil {
		renderer = content.New()
	}
	h := &GameHandlers{store: store, content: renderer, msgs: newMessages(bundle)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes registers game endpoints under the provided router.
func (h *GameHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/games", h.listGames)
	r.Get("/games/latest", h.latestGames)
	r.Get("/games/{name}", h.getGame)
}

type gameCard struct {
	Name         string `json:"name"`
	Logo         string `json:"logo"`
	FallbackLogo string `json:"fallbackLogo"`
	Href         string `json:"href"`
}

func gameCards(games []catalog.Game) []gameCard {
	out := make([]gameCard, 0, len(games))
	for _, g := range games {
		logo := g.Logo
		if logo == "" {
			logo = catalog.DefaultLogo
		}
		out = append(out, gameCard{
			Name:         g.Name,
			Logo:         logo,
			FallbackLogo: catalog.DefaultLogo,
			Href:         nav.GameURL(g.Name),
		})
	}
	return out
}

type gameListResponse struct {
	Games   []gameCard `json:"games"`
	Message string     `json:"message,omitempty"`
}

type socialLinkView struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type gameDetailResponse struct {
	Name            string             `json:"name"`
	Title           string             `json:"title"`
	Logo            string             `json:"logo"`
	FallbackLogo    string             `json:"fallbackLogo"`
	Products        []catalog.Product  `json:"products"`
	ProductsMessage string             `json:"productsMessage,omitempty"`
	Social          [][]socialLinkView `json:"social"`
	ArticleURL      string             `json:"articleUrl"`
	GiftCodeURL     string             `json:"giftCodeUrl"`
	Description     string             `json:"description,omitempty"`
	Notice          []string           `json:"notice"`
	LastUpdated     string             `json:"lastUpdated,omitempty"`
	Meta            seo.Meta           `json:"meta"`
}

func (h *GameHandlers) listGames(w http.ResponseWriter, r *http.Request) {
	set, err := h.store.Games(r.Context())
	if err != nil {
		h.msgs.writeCatalogError(w, r, err, "games.unavailable", "", nil)
		return
	}
	games := set.Search(r.URL.Query().Get("q"))
	catalog.Shuffle(games, h.shuffler)

	resp := gameListResponse{Games: gameCards(games)}
	if len(games) == 0 {
		resp.Message = h.msgs.t(r, "games.no_match")
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *GameHandlers) latestGames(w http.ResponseWriter, r *http.Request) {
	limit := defaultLatestLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpx.WriteError(r.Context(), w, httpx.NewError("invalid_limit", "limit must be a positive integer", http.StatusBadRequest))
			return
		}
		limit = min(n, maxLatestLimit)
	}

	set, err := h.store.Games(r.Context())
	if err != nil {
		h.msgs.writeCatalogError(w, r, err, "games.latest_unavailable", "", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, gameListResponse{Games: gameCards(set.Latest(limit))})
}

func (h *GameHandlers) getGame(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if name == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", h.msgs.t(r, "game.unnamed"), http.StatusBadRequest).
			WithDetails(map[string]any{"meta": seo.GameDetail("", seo.GameUnnamed)}))
		return
	}

	game, err := h.store.Game(r.Context(), name)
	if err != nil {
		status := seo.GameLoadFailed
		if isNotFound(err) {
			status = seo.GameMissing
		}
		h.msgs.writeCatalogError(w, r, err, "game.load_failed", h.msgs.t(r, "game.not_found"),
			map[string]any{"meta": seo.GameDetail(name, status)})
		return
	}

	resp := gameDetailResponse{
		Name:         name,
		Title:        h.msgs.t(r, "game.title", name),
		Logo:         game.Logo,
		FallbackLogo: catalog.DefaultLogo,
		Products:     game.Products,
		ArticleURL:   nav.ArticleURL(name),
		GiftCodeURL:  nav.GiftCodeURL(name),
		Description:  h.content.Plain(game.Description),
		Notice:       strings.Split(h.msgs.t(r, "game.notice"), "\n"),
		LastUpdated:  game.LastUpdated,
		Meta:         gameMeta(game),
	}
	if resp.Logo == "" {
		resp.Logo = catalog.DefaultLogo
	}
	if resp.Products == nil {
		resp.Products = []catalog.Product{}
	}
	if len(resp.Products) == 0 {
		resp.ProductsMessage = h.msgs.t(r, "game.no_products")
	}
	first, rest := game.SocialLines()
	for _, line := range [][]catalog.SocialLink{first, rest} {
		if len(line) == 0 {
			continue
		}
		views := make([]socialLinkView, 0, len(line))
		for _, l := range line {
			views = append(views, socialLinkView{Name: l.Name, Href: l.Href()})
		}
		resp.Social = append(resp.Social, views)
	}
	if resp.Social == nil {
		resp.Social = [][]socialLinkView{}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// gameMeta is the detail page metadata with the product and breadcrumb schemas.
func gameMeta(g catalog.Game) seo.Meta {
	m := seo.GameDetail(g.Name, seo.GameFound)
	prices := make([]int, 0, len(g.Products))
	for _, p := range g.Products {
		prices = append(prices, p.Price)
	}
	image := seo.DefaultOGImage
	if g.Logo != "" {
		image = seo.SiteURL + strings.TrimPrefix(g.Logo, "/")
	}
	m.JSONLD = append(m.JSONLD,
		seo.Product(g.Name, m.Description, m.Canonical, image, prices),
		seo.Breadcrumbs(nav.GameDetailPage, g.Name),
	)
	return m
}
