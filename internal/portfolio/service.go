package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/musaihq/holdings/internal/collector"
	"github.com/musaihq/holdings/internal/domain"
	"github.com/musaihq/holdings/internal/export"
	"github.com/musaihq/holdings/internal/ratefx"
)

// Collector drains all configured accounts into a single result.
type Collector interface {
	CollectAll(ctx context.Context) (collector.Result, error)
}

// RateSource supplies the current exchange-rate table.
type RateSource interface {
	Rates(ctx context.Context) ratefx.Table
}

// Service runs full aggregation passes and keeps the latest snapshot in
// memory. Snapshots are ephemeral; a restart starts empty until the first
// refresh completes.
type Service struct {
	collector Collector
	rates     RateSource
	base      string

	mu     sync.RWMutex
	latest export.Snapshot
	has    bool
}

// NewService creates a portfolio service aggregating into the given home currency.
func NewService(c Collector, rates RateSource, base string) *Service {
	return &Service{collector: c, rates: rates, base: base}
}

// Refresh collects from every account, converts to home currency, and
// replaces the stored snapshot. The only errors are "nothing configured"
// and context cancellation; per-account failures ride inside the snapshot.
func (s *Service) Refresh(ctx context.Context) (export.Snapshot, error) {
	result, err := s.collector.CollectAll(ctx)
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("collecting holdings: %w", err)
	}

	table := s.rates.Rates(ctx)
	converted, warnings := ratefx.Convert(result.Records, table)

	snap := export.BuildSnapshot(result, converted, warnings, s.base)

	s.mu.Lock()
	s.latest = snap
	s.has = true
	s.mu.Unlock()

	slog.Info("portfolio refreshed",
		"records", len(snap.Records),
		"totalEval", snap.Summary.TotalEval,
		"failures", len(snap.Failures),
	)
	return snap, nil
}

// Latest returns the most recent snapshot and whether one exists yet.
func (s *Service) Latest() (export.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.has
}

// Records returns the records of the latest snapshot, or nil before the
// first refresh.
func (s *Service) Records() []domain.ConvertedRecord {
	snap, ok := s.Latest()
	if !ok {
		return nil
	}
	return snap.Records
}
