package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/httpx"
	"github.com/diva3322/SSBuy-web/internal/requestctx"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	ready   ReadinessCheck
	clock   func() time.Time
	started time.Time
}

// HealthOption customises HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithHealthClock overrides the time source.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// NewHealthHandlers constructs probe handlers. A nil check always reports ready.
func NewHealthHandlers(ready ReadinessCheck, opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{ready: ready, clock: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	h.started = h.clock()
	return h
}

// Healthz responds with a simple status payload for liveness checks.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.started).String(),
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}

// Readyz reports 503 while the catalog cannot be loaded.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.ready != nil {
		if err := h.ready(ctx); err != nil {
			requestctx.Logger(ctx).Warn("readiness check failed", zap.Error(err))
			httpx.WriteError(ctx, w, httpx.NewError("not_ready", "dependencies unavailable", http.StatusServiceUnavailable))
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}
