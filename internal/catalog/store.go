package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/carousel"
	"github.com/diva3322/SSBuy-web/internal/observability"
)

// DefaultCacheTTL is how long decoded data files are reused.
const DefaultCacheTTL = 5 * time.Minute

// Store loads and caches the data files from a Source. Every load either
// yields a complete decoded file or fails with ErrDataUnavailable.
type Store struct {
	source   Source
	ttl      time.Duration
	clock    func() time.Time
	validate *validator.Validate

	mu       sync.Mutex
	games    *GameSet
	gamesExp time.Time
	gifts    *GiftCodeSet
	giftsExp time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithCacheTTL overrides the cache lifetime; zero or negative disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewStore constructs a Store reading from source.
func NewStore(source Source, opts ...Option) *Store {
	s := &Store{
		source:   source,
		ttl:      DefaultCacheTTL,
		clock:    time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Games returns the decoded games.json.
func (s *Store) Games(ctx context.Context) (*GameSet, error) {
	now := s.clock()
	s.mu.Lock()
	if s.games != nil && now.Before(s.gamesExp) {
		set := s.games
		s.mu.Unlock()
		return set, nil
	}
	s.mu.Unlock()

	set, err := s.loadGames(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.games, s.gamesExp = set, now.Add(s.ttl)
	s.mu.Unlock()
	return set, nil
}

// GiftCodes returns the decoded gift-codes-data.json.
func (s *Store) GiftCodes(ctx context.Context) (*GiftCodeSet, error) {
	now := s.clock()
	s.mu.Lock()
	if s.gifts != nil && now.Before(s.giftsExp) {
		set := s.gifts
		s.mu.Unlock()
		return set, nil
	}
	s.mu.Unlock()

	set, err := s.loadGiftCodes(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.gifts, s.giftsExp = set, now.Add(s.ttl)
	s.mu.Unlock()
	return set, nil
}

// Game returns one game or ErrNotFound.
func (s *Store) Game(ctx context.Context, name string) (Game, error) {
	set, err := s.Games(ctx)
	if err != nil {
		return Game{}, err
	}
	g, ok := set.Lookup(name)
	if !ok {
		return Game{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return g, nil
}

// GiftCodeGame returns one gift-code entry or ErrNotFound.
func (s *Store) GiftCodeGame(ctx context.Context, name string) (GiftCodeGame, error) {
	set, err := s.GiftCodes(ctx)
	if err != nil {
		return GiftCodeGame{}, err
	}
	g, ok := set.Lookup(name)
	if !ok {
		return GiftCodeGame{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return g, nil
}

// LoadCatalog implements carousel.Provider.
func (s *Store) LoadCatalog(ctx context.Context) ([]carousel.Item, error) {
	set, err := s.Games(ctx)
	if err != nil {
		return nil, err
	}
	return set.Items(), nil
}

// Invalidate drops the cached files.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games, s.gifts = nil, nil
}

func (s *Store) loadGames(ctx context.Context) (set *GameSet, err error) {
	ctx, span := observability.StartSpan(ctx, "catalog.LoadGames", attribute.String("catalog.file", GamesFile))
	defer func() { observability.EndSpan(span, err) }()

	rc, err := s.source.Open(ctx, GamesFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer rc.Close()

	set, err = DecodeGames(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	s.dropInvalidProducts(ctx, set)
	span.SetAttributes(attribute.Int("catalog.games", set.Len()))
	return set, nil
}

func (s *Store) loadGiftCodes(ctx context.Context) (set *GiftCodeSet, err error) {
	ctx, span := observability.StartSpan(ctx, "catalog.LoadGiftCodes", attribute.String("catalog.file", GiftCodesFile))
	defer func() { observability.EndSpan(span, err) }()

	rc, err := s.source.Open(ctx, GiftCodesFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer rc.Close()

	set, err = DecodeGiftCodes(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	span.SetAttributes(attribute.Int("catalog.gift_code_games", set.Len()))
	return set, nil
}

// dropInvalidProducts removes products without a name or with a negative
// price. The rest of the game stays usable.
func (s *Store) dropInvalidProducts(ctx context.Context, set *GameSet) {
	logger := observability.FromContext(ctx)
	for _, name := range set.order {
		g := set.games[name]
		kept := g.Products[:0:0]
		for _, p := range g.Products {
			if err := s.validate.Struct(p); err != nil {
				logger.Warn("catalog product skipped",
					zap.String("game", name),
					zap.String("product", p.Name),
					zap.Error(err),
				)
				continue
			}
			kept = append(kept, p)
		}
		if len(kept) != len(g.Products) {
			g.Products = kept
			set.games[name] = g
		}
	}
}
