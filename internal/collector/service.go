package collector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/musaihq/holdings/internal/broker"
	"github.com/musaihq/holdings/internal/domain"
)

// ErrNoAccounts distinguishes "nothing configured" from "all accounts
// failed": the latter yields an empty Result with failures, not an error.
var ErrNoAccounts = errors.New("no accounts configured")

// DomesticFetcher is the capability every configured account has.
type DomesticFetcher interface {
	Account() domain.AccountContext
	FetchDomesticHoldings(ctx context.Context) ([]domain.AssetRecord, error)
}

// OverseasFetcher is the optional overseas capability. Brokers without an
// overseas endpoint simply do not implement it.
type OverseasFetcher interface {
	FetchOverseasHoldings(ctx context.Context) ([]domain.AssetRecord, error)
}

// Failure records one account-level fetch that contributed nothing.
type Failure struct {
	Account string        `json:"account"`
	Market  domain.Market `json:"market"`
	Err     string        `json:"error"`
}

// Result is one full collection pass. CollectedAt lets callers tell an
// empty result apart from a run that never happened.
type Result struct {
	Records     []domain.AssetRecord `json:"records"`
	Failures    []Failure            `json:"failures"`
	CollectedAt time.Time            `json:"collected_at"`
}

// Service iterates configured accounts and concatenates their normalized
// records. One broker's outage never aborts collection from the others.
type Service struct {
	accounts []DomesticFetcher
}

// NewService creates a collector over the given accounts. Iteration order
// is the configured order and is deterministic.
func NewService(accounts ...DomesticFetcher) *Service {
	return &Service{accounts: accounts}
}

// CollectAll fetches holdings from every configured account. Per-account
// errors are logged, recorded as failures, and never propagated; the only
// errors returned are ErrNoAccounts and context cancellation.
func (s *Service) CollectAll(ctx context.Context) (Result, error) {
	if len(s.accounts) == 0 {
		return Result{}, ErrNoAccounts
	}

	result := Result{CollectedAt: domain.NowKST()}

	for _, acct := range s.accounts {
		label := acct.Account().Label
		slog.Info("collecting account", "account", label)

		records, err := acct.FetchDomesticHoldings(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			slog.Error("domestic fetch failed", "account", label, "error", err)
			result.Failures = append(result.Failures, Failure{Account: label, Market: domain.MarketDomestic, Err: err.Error()})

			// Re-authentication cannot succeed mid-run; skip the
			// account's remaining fetches.
			var authErr *broker.AuthError
			if errors.As(err, &authErr) {
				continue
			}
		} else {
			result.Records = append(result.Records, records...)
		}

		overseas, ok := acct.(OverseasFetcher)
		if !ok {
			continue
		}
		records, err = overseas.FetchOverseasHoldings(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			slog.Error("overseas fetch failed", "account", label, "error", err)
			result.Failures = append(result.Failures, Failure{Account: label, Market: domain.MarketOverseas, Err: err.Error()})
			continue
		}
		result.Records = append(result.Records, records...)
	}

	slog.Info("collection complete",
		"accounts", len(s.accounts),
		"records", len(result.Records),
		"failures", len(result.Failures),
	)
	return result, nil
}
