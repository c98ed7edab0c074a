package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured. When
// apiKey is non-empty the refresh endpoint requires a matching Bearer token.
func NewServer(port string, portfolio PortfolioProvider, apiKey string) *http.Server {
	handler := NewHandler(portfolio)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/portfolio", handler.GetPortfolio)
	mux.HandleFunc("GET /api/v1/portfolio/summary", handler.GetSummary)
	mux.HandleFunc("GET /api/v1/portfolio/records", handler.GetRecords)

	refreshHandler := http.HandlerFunc(handler.RefreshPortfolio)
	if apiKey != "" {
		mux.Handle("POST /api/v1/portfolio/refresh", requireAuth(apiKey, refreshHandler))
	} else {
		mux.Handle("POST /api/v1/portfolio/refresh", refreshHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
