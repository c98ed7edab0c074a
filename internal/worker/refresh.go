package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/musaihq/holdings/internal/export"
)

// Refresher runs one full aggregation pass and returns the snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (export.Snapshot, error)
}

// AfterRefreshHook is called after each successful refresh.
type AfterRefreshHook interface {
	Export(ctx context.Context, snap export.Snapshot) error
}

// RefreshWorker periodically re-collects the portfolio and hands the
// snapshot to the configured hooks.
type RefreshWorker struct {
	refresher Refresher
	interval  time.Duration
	hooks     []AfterRefreshHook
}

// NewRefreshWorker creates a new RefreshWorker with optional post-refresh hooks.
func NewRefreshWorker(refresher Refresher, interval time.Duration, hooks ...AfterRefreshHook) *RefreshWorker {
	return &RefreshWorker{
		refresher: refresher,
		interval:  interval,
		hooks:     hooks,
	}
}

// runHooks calls every configured hook; one hook's failure does not stop
// the others.
func (w *RefreshWorker) runHooks(ctx context.Context, snap export.Snapshot) {
	for _, hook := range w.hooks {
		if err := hook.Export(ctx, snap); err != nil {
			slog.Error("RefreshWorker: export hook failed", "error", err)
		}
	}
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) {
	slog.Info("RefreshWorker: starting", "interval", w.interval)

	// Refresh immediately on startup
	if snap, err := w.refresher.Refresh(ctx); err != nil {
		slog.Error("RefreshWorker: initial refresh failed", "error", err)
	} else {
		slog.Info("RefreshWorker: initial refresh completed")
		w.runHooks(ctx, snap)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RefreshWorker: shutting down")
			return
		case <-ticker.C:
			if snap, err := w.refresher.Refresh(ctx); err != nil {
				slog.Error("RefreshWorker: refresh failed", "error", err)
			} else {
				slog.Info("RefreshWorker: refresh completed")
				w.runHooks(ctx, snap)
			}
		}
	}
}
