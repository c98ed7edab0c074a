package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/musaihq/holdings/internal/collector"
	"github.com/musaihq/holdings/internal/domain"
	"github.com/musaihq/holdings/internal/export"
)

// PortfolioProvider is the subset of the portfolio service the API uses.
type PortfolioProvider interface {
	Latest() (export.Snapshot, bool)
	Refresh(ctx context.Context) (export.Snapshot, error)
}

// Handler provides HTTP endpoints over the aggregated portfolio.
type Handler struct {
	portfolio PortfolioProvider
}

// NewHandler creates a new API handler.
func NewHandler(portfolio PortfolioProvider) *Handler {
	return &Handler{portfolio: portfolio}
}

// GetPortfolio handles GET /api/v1/portfolio.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.portfolio.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no snapshot collected yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// summaryResponse trims a snapshot down to what a dashboard header needs.
type summaryResponse struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Summary     domain.Summary        `json:"summary"`
	Accounts    []domain.AccountTotal `json:"accounts"`
	Failures    []collector.Failure   `json:"failures,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// GetSummary handles GET /api/v1/portfolio/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.portfolio.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no snapshot collected yet")
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		GeneratedAt: snap.GeneratedAt,
		Summary:     snap.Summary,
		Accounts:    snap.Accounts,
		Failures:    snap.Failures,
		Warnings:    snap.Warnings,
	})
}

// GetRecords handles GET /api/v1/portfolio/records.
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.portfolio.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no snapshot collected yet")
		return
	}
	writeJSON(w, http.StatusOK, snap.Records)
}

// RefreshPortfolio handles POST /api/v1/portfolio/refresh.
func (h *Handler) RefreshPortfolio(w http.ResponseWriter, r *http.Request) {
	snap, err := h.portfolio.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, collector.ErrNoAccounts) {
			writeError(w, http.StatusServiceUnavailable, "no accounts configured")
			return
		}
		slog.Error("failed to refresh portfolio", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to refresh portfolio")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
