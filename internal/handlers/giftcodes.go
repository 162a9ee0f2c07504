package handlers

import (
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/content"
	"github.com/diva3322/SSBuy-web/internal/format"
	"github.com/diva3322/SSBuy-web/internal/httpx"
	"github.com/diva3322/SSBuy-web/internal/i18n"
	"github.com/diva3322/SSBuy-web/internal/nav"
	"github.com/diva3322/SSBuy-web/internal/seo"
)

// recommendedGames is how many newest games the gift-code page links to.
const recommendedGames = 10

// GiftCodeHandlers serves the gift-code overview and detail page data.
type GiftCodeHandlers struct {
	store   *catalog.Store
	content *content.Renderer
	msgs    messages
	clock   func() time.Time
	pick    func(n int) int
}

// GiftCodeOption customises GiftCodeHandlers.
type GiftCodeOption func(*GiftCodeHandlers)

// WithGiftCodeClock overrides the time source used for the year shown in copy.
func WithGiftCodeClock(clock func() time.Time) GiftCodeOption {
	return func(h *GiftCodeHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithSubtitlePicker overrides how the overview subtitle is chosen. pick
// receives the number of variants and returns an index.
func WithSubtitlePicker(pick func(n int) int) GiftCodeOption {
	return func(h *GiftCodeHandlers) {
		if pick != nil {
			h.pick = pick
		}
	}
}

// NewGiftCodeHandlers constructs gift-code handlers backed by store.
func NewGiftCodeHandlers(store *catalog.Store, renderer *content.Renderer, bundle *i18n.Bundle, opts ...GiftCodeOption) *GiftCodeHandlers {
	if renderer == nil {
		renderer = content.New()
	}
	h := &GiftCodeHandlers{
		store:   store,
		content: renderer,
		msgs:    newMessages(bundle),
		clock:   time.Now,
		pick:    rand.IntN,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes registers gift-code endpoints under the provided router.
func (h *GiftCodeHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/giftcodes", h.overview)
	r.Get("/giftcodes/{name}", h.detail)
}

type giftCodeCard struct {
	Name           string `json:"name"`
	Banner         string `json:"banner"`
	FallbackBanner string `json:"fallbackBanner"`
	Href           string `json:"href"`
}

type giftCodeOverviewResponse struct {
	Subtitle string         `json:"subtitle"`
	Games    []giftCodeCard `json:"games"`
	Message  string         `json:"message,omitempty"`
}

type giftCodeDetailResponse struct {
	Name           string             `json:"name"`
	Title          string             `json:"title"`
	Banner         string             `json:"banner"`
	FallbackBanner string             `json:"fallbackBanner"`
	Intro          string             `json:"intro"`
	Description    string             `json:"description"`
	HowTo          []string           `json:"howTo"`
	Codes          []catalog.GiftCode `json:"codes"`
	CodesMessage   string             `json:"codesMessage,omitempty"`
	Notice         string             `json:"notice"`
	GameURL        string             `json:"gameUrl"`
	Recommended    []gameCard         `json:"recommended"`
	Meta           seo.Meta           `json:"meta"`
}

func bannerOrDefault(banner string) string {
	if banner == "" {
		return catalog.DefaultBanner
	}
	return banner
}

func (h *GiftCodeHandlers) overview(w http.ResponseWriter, r *http.Request) {
	set, err := h.store.GiftCodes(r.Context())
	if err != nil {
		h.msgs.writeCatalogError(w, r, err, "giftcodes.unavailable", "", nil)
		return
	}

	entries := set.Overview(r.URL.Query().Get("q"))
	cards := make([]giftCodeCard, 0, len(entries))
	for _, g := range entries {
		cards = append(cards, giftCodeCard{
			Name:           g.Name,
			Banner:         bannerOrDefault(g.Banner),
			FallbackBanner: catalog.DefaultBanner,
			Href:           nav.GiftCodeURL(g.Name),
		})
	}

	resp := giftCodeOverviewResponse{Subtitle: h.subtitle(r), Games: cards}
	if len(cards) == 0 {
		resp.Message = h.msgs.t(r, "games.no_match")
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// subtitle is the current year followed by one of the subtitle variants.
func (h *GiftCodeHandlers) subtitle(r *http.Request) string {
	year := strconv.Itoa(format.Year(h.clock()))
	variants := h.msgs.bundle.Variants(h.msgs.lang(r), "giftcodes.subtitle")
	if len(variants) == 0 {
		return year
	}
	i := h.pick(len(variants))
	if i < 0 || i >= len(variants) {
		i = 0
	}
	return year + variants[i]
}

func (h *GiftCodeHandlers) detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := nameParam(r)
	if name == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", h.msgs.t(r, "game.unnamed"), http.StatusBadRequest))
		return
	}

	g, err := h.store.GiftCodeGame(ctx, name)
	if err != nil {
		h.msgs.writeCatalogError(w, r, err, "giftcode.load_failed", h.msgs.t(r, "giftcode.not_found", name), nil)
		return
	}

	description := h.content.Block(g.Description)
	if description == "" {
		description = h.content.Sanitize(catalog.DefaultGiftDescription)
	}
	codes := g.Codes
	if codes == nil {
		codes = []catalog.GiftCode{}
	}

	meta := seo.GiftCodeDetail(name)
	meta.JSONLD = append(meta.JSONLD, seo.Breadcrumbs(nav.GiftCodePage, name))

	resp := giftCodeDetailResponse{
		Name:           name,
		Title:          h.msgs.t(r, "giftcode.title", name),
		Banner:         bannerOrDefault(g.Banner),
		FallbackBanner: catalog.DefaultBanner,
		Intro:          h.msgs.t(r, "giftcode.intro", name, format.Year(h.clock())),
		Description:    description,
		HowTo:          h.content.Steps(g.HowTo, catalog.DefaultHowTo),
		Codes:          codes,
		Notice:         h.msgs.t(r, "giftcode.notice"),
		GameURL:        nav.GameURL(name),
		Recommended:    latestGames(ctx, h.store, recommendedGames),
		Meta:           meta,
	}
	if len(codes) == 0 {
		resp.CodesMessage = h.msgs.t(r, "giftcode.no_codes")
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
