// Package refresher runs the periodic price refresh loop.
package refresher

import (
	"context"
	"sync/atomic"
	"time"

	"daechul/internal/logger"
	"daechul/internal/services"
)

// Refresher periodically refreshes prices through the asset service. Ticks
// that arrive while a refresh is still in flight are skipped rather than
// queued.
type Refresher struct {
	assets   services.AssetServicer
	interval time.Duration
	running  atomic.Bool
}

// New creates a Refresher that refreshes every interval.
func New(assets services.AssetServicer, interval time.Duration) *Refresher {
	return &Refresher{assets: assets, interval: interval}
}

// Start runs the refresh loop until ctx is cancelled. It blocks, so run it in
// its own goroutine.
func (r *Refresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger.Get().Infow("price refresher started", "interval", r.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("price refresher stopped")
			return
		case <-ticker.C:
			go r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		logger.Get().Debug("price refresh still in flight, skipping tick")
		return
	}
	defer r.running.Store(false)

	start := time.Now()
	if err := r.assets.RefreshPrices(ctx); err != nil {
		logger.Get().Warnw("price refresh failed", "error", err.Error())
		return
	}
	logger.Get().Debugw("price refresh completed", "took", time.Since(start).String())
}
