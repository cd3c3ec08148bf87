package handlers

import (
	"time"

	"asimply_pulse/internal/game"
	"asimply_pulse/internal/ledger"
)

// Handler carries the dependencies of the API endpoints. The ledger store is
// the only stateful one; everything else renders its results.
type Handler struct {
	Store *ledger.Store
	Wheel *game.SpinWheel
	now   func() time.Time
}

// Option customizes a Handler.
type Option func(*Handler)

// WithNow injects the clock used for time-gated endpoints.
func WithNow(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(store *ledger.Store, opts ...Option) *Handler {
	h := &Handler{
		Store: store,
		Wheel: game.NewSpinWheel(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
