package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"asimply_pulse/internal/ledger"
	"asimply_pulse/internal/logger"
)

// BattleFeed polls the ledger for battle standings and broadcasts them when
// they change.
type BattleFeed struct {
	hub    *Hub
	store  *ledger.Store
	period time.Duration
	last   []byte
}

func NewBattleFeed(hub *Hub, store *ledger.Store, period time.Duration) *BattleFeed {
	if period <= 0 {
		period = 5 * time.Second
	}
	return &BattleFeed{hub: hub, store: store, period: period}
}

// Run blocks until ctx is cancelled.
func (f *BattleFeed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.push(ctx)
		}
	}
}

func (f *BattleFeed) push(ctx context.Context) {
	if f.hub.Count() == 0 {
		return
	}

	battles, err := f.store.GetBattles(ctx)
	if err != nil {
		logger.Warn("battle feed read failed", "error", err)
		return
	}

	msg, err := json.Marshal(map[string]any{
		"type":    "battle_standings",
		"battles": battles,
	})
	if err != nil {
		return
	}
	if bytes.Equal(msg, f.last) {
		return
	}
	f.last = msg
	f.hub.Broadcast(msg)
}
