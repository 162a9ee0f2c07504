package carousel

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBoardTTL is how long an idle board is kept.
	DefaultBoardTTL = 30 * time.Minute
	// DefaultMaxBoards caps how many boards are kept at once.
	DefaultMaxBoards = 10000
)

type registryEntry struct {
	board     *Board
	expiresAt time.Time
}

// Registry keeps live boards in memory keyed by a random ID. Boards idle for
// longer than the TTL are dropped, and once the registry is full adding a
// board evicts the one closest to expiry.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	clock   func() time.Time
	entries map[string]registryEntry
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithTTL overrides the idle lifetime of boards.
func WithTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithMaxBoards overrides how many boards are kept at once.
func WithMaxBoards(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.max = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) RegistryOption {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRegistry constructs an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ttl:     DefaultBoardTTL,
		max:     DefaultMaxBoards,
		clock:   time.Now,
		entries: make(map[string]registryEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add assigns the board an ID and stores it, evicting the board closest to
// expiry when the registry is full.
func (r *Registry) Add(b *Board) string {
	id := uuid.NewString()
	b.ID = id
	now := r.clock()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) >= r.max {
		r.sweepLocked(now)
	}
	for len(r.entries) >= r.max {
		r.evictLocked()
	}
	r.entries[id] = registryEntry{board: b, expiresAt: now.Add(r.ttl)}
	return id
}

func (r *Registry) evictLocked() {
	var (
		oldest   string
		earliest time.Time
	)
	for id, e := range r.entries {
		if oldest == "" || e.expiresAt.Before(earliest) {
			oldest, earliest = id, e.expiresAt
		}
	}
	delete(r.entries, oldest)
}

// Get returns a live board and extends its lifetime.
func (r *Registry) Get(id string) (*Board, bool) {
	now := r.clock()
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	if !now.Before(e.expiresAt) {
		delete(r.entries, id)
		return nil, false
	}
	e.expiresAt = now.Add(r.ttl)
	r.entries[id] = e
	return e.board, true
}

// Remove drops a board and reports whether it was stored.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	delete(r.entries, id)
	return ok
}

// Len returns the number of stored boards, expired or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes expired boards and returns how many were dropped.
func (r *Registry) Sweep() int {
	now := r.clock()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(now)
}

func (r *Registry) sweepLocked(now time.Time) int {
	removed := 0
	for id, e := range r.entries {
		if now.Before(e.expiresAt) {
			continue
		}
		delete(r.entries, id)
		removed++
	}
	return removed
}

// Run sweeps on every tick of interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
