package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/musaihq/holdings/internal/collector"
	"github.com/musaihq/holdings/internal/domain"
	"github.com/musaihq/holdings/internal/export"
)

type mockPortfolio struct {
	snap       export.Snapshot
	has        bool
	refreshErr error

	refreshCalls int
}

func (m *mockPortfolio) Latest() (export.Snapshot, bool) {
	return m.snap, m.has
}

func (m *mockPortfolio) Refresh(_ context.Context) (export.Snapshot, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return export.Snapshot{}, m.refreshErr
	}
	m.has = true
	return m.snap, nil
}

func testSnapshot() export.Snapshot {
	return export.Snapshot{
		GeneratedAt:  time.Date(2026, 8, 31, 15, 30, 0, 0, domain.KST),
		BaseCurrency: "KRW",
		Records: []domain.ConvertedRecord{
			{
				AssetRecord: domain.AssetRecord{
					Broker: "한국투자증권", AccountLabel: "한국투자증권(개인)",
					Market: domain.MarketDomestic, AssetType: domain.AssetTypeStock,
					Ticker: "005930", Name: "삼성전자", Quantity: 10,
					EvalAmount: 700000, Currency: "KRW",
				},
				EvalAmountHome: 700000, PrincipalHome: 600000, ProfitLossHome: 100000,
			},
		},
		Summary:  domain.Summary{TotalEval: 700000, TotalPrincipal: 600000, TotalProfitLoss: 100000},
		Accounts: []domain.AccountTotal{{Label: "한국투자증권(개인)", Eval: 700000}},
	}
}

func TestGetPortfolio(t *testing.T) {
	handler := NewHandler(&mockPortfolio{snap: testSnapshot(), has: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio", nil)
	w := httptest.NewRecorder()
	handler.GetPortfolio(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var snap export.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Records) != 1 || snap.Records[0].Ticker != "005930" {
		t.Errorf("unexpected body: %+v", snap)
	}
}

func TestGetPortfolioBeforeFirstRefresh(t *testing.T) {
	handler := NewHandler(&mockPortfolio{})

	w := httptest.NewRecorder()
	handler.GetPortfolio(w, httptest.NewRequest(http.MethodGet, "/api/v1/portfolio", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetSummary(t *testing.T) {
	handler := NewHandler(&mockPortfolio{snap: testSnapshot(), has: true})

	w := httptest.NewRecorder()
	handler.GetSummary(w, httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/summary", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp summaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Summary.TotalEval != 700000 {
		t.Errorf("TotalEval = %v, want 700000", resp.Summary.TotalEval)
	}
	if len(resp.Accounts) != 1 {
		t.Errorf("accounts = %d, want 1", len(resp.Accounts))
	}
}

func TestGetRecords(t *testing.T) {
	handler := NewHandler(&mockPortfolio{snap: testSnapshot(), has: true})

	w := httptest.NewRecorder()
	handler.GetRecords(w, httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/records", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []domain.ConvertedRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
}

func TestRefreshPortfolio(t *testing.T) {
	mock := &mockPortfolio{snap: testSnapshot()}
	handler := NewHandler(mock)

	w := httptest.NewRecorder()
	handler.RefreshPortfolio(w, httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/refresh", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if mock.refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", mock.refreshCalls)
	}
}

func TestRefreshPortfolioNoAccounts(t *testing.T) {
	handler := NewHandler(&mockPortfolio{refreshErr: collector.ErrNoAccounts})

	w := httptest.NewRecorder()
	handler.RefreshPortfolio(w, httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/refresh", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestRefreshPortfolioError(t *testing.T) {
	handler := NewHandler(&mockPortfolio{refreshErr: errors.New("context deadline exceeded")})

	w := httptest.NewRecorder()
	handler.RefreshPortfolio(w, httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/refresh", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
