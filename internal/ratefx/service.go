package ratefx

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const cacheTTL = 10 * time.Minute

// FallbackRates is the static table used when the provider is unreachable.
// Values are foreign units per one KRW.
var FallbackRates = map[string]float64{
	"KRW": 1,
	"USD": 0.000724,
	"HKD": 0.005545,
}

// Table is one rate snapshot. Rates are foreign units per one unit of
// Base; Fallback marks the static table standing in for live data.
type Table struct {
	Base      string
	Rates     map[string]float64
	FetchedAt time.Time
	Fallback  bool
}

// Rate returns the factor for the given currency and whether it was found.
func (t Table) Rate(currency string) (float64, bool) {
	r, ok := t.Rates[currency]
	return r, ok
}

// Service caches rate tables for cacheTTL and falls back to the static
// table on provider failure. Fallback tables are never cached, so the
// next call retries the provider.
type Service struct {
	client *Client
	base   string

	mu     sync.RWMutex
	cached Table
	expiry time.Time
}

// NewService creates a rate service quoting against the given home currency.
func NewService(client *Client, base string) *Service {
	return &Service{client: client, base: base}
}

// Rates returns the current rate table, fetching from the provider when
// the cache is stale. It always returns a usable table.
func (s *Service) Rates(ctx context.Context) Table {
	s.mu.RLock()
	if !s.expiry.IsZero() && time.Now().Before(s.expiry) {
		cached := s.cached
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	rates, err := s.client.FetchRates(ctx, s.base)
	if err != nil {
		slog.Warn("rate fetch failed, using fallback table", "base", s.base, "error", err)
		return Table{Base: s.base, Rates: FallbackRates, FetchedAt: time.Now(), Fallback: true}
	}

	table := Table{Base: s.base, Rates: rates, FetchedAt: time.Now()}

	s.mu.Lock()
	s.cached = table
	s.expiry = table.FetchedAt.Add(cacheTTL)
	s.mu.Unlock()

	slog.Info("exchange rates refreshed", "base", s.base, "currencies", len(rates))
	return table
}
