package config

import (
	"os"
	"testing"
	"time"

	"github.com/musaihq/holdings/internal/domain"
)

func clearAccountEnv(t *testing.T) {
	t.Helper()
	for _, b := range []string{"HANTOO", "KIWOOM"} {
		for _, p := range []string{"P", "C"} {
			for _, part := range []string{"APP_KEY", "APP_SECRET", "ACCOUNT_NO"} {
				key := p + "_" + b + "_" + part
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAccountEnv(t)
	for _, key := range []string{"KIS_BASE_URL", "KIWOOM_BASE_URL", "RATE_API_URL", "HOME_CURRENCY", "HTTP_PORT", "REFRESH_INTERVAL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.KISBaseURL != "https://openapi.koreainvestment.com:9443" {
		t.Errorf("KISBaseURL = %q, want default", cfg.KISBaseURL)
	}
	if cfg.KiwoomBaseURL != "https://api.kiwoom.com" {
		t.Errorf("KiwoomBaseURL = %q, want default", cfg.KiwoomBaseURL)
	}
	if cfg.RateAPIURL != "https://open.er-api.com/v6" {
		t.Errorf("RateAPIURL = %q, want default", cfg.RateAPIURL)
	}
	if cfg.HomeCurrency != "KRW" {
		t.Errorf("HomeCurrency = %q, want KRW", cfg.HomeCurrency)
	}
	if cfg.RefreshInterval != 10*time.Minute {
		t.Errorf("RefreshInterval = %v, want 10m", cfg.RefreshInterval)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if len(cfg.Accounts) != 0 {
		t.Errorf("Accounts = %d, want 0", len(cfg.Accounts))
	}
}

func TestLoadEnvOverride(t *testing.T) {
	clearAccountEnv(t)
	t.Setenv("KIS_BASE_URL", "https://openapivts.koreainvestment.com:29443")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REFRESH_INTERVAL", "5m")

	cfg := Load()

	if cfg.KISBaseURL != "https://openapivts.koreainvestment.com:29443" {
		t.Errorf("KISBaseURL = %q, want override", cfg.KISBaseURL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("RefreshInterval = %v, want 5m", cfg.RefreshInterval)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	clearAccountEnv(t)
	t.Setenv("REFRESH_INTERVAL", "ten minutes")

	cfg := Load()
	if cfg.RefreshInterval != 10*time.Minute {
		t.Errorf("RefreshInterval = %v, want default on malformed value", cfg.RefreshInterval)
	}
}

func TestDiscoverAccountsOrderAndTypes(t *testing.T) {
	clearAccountEnv(t)
	// Configure in scrambled order; discovery order must stay fixed.
	t.Setenv("C_KIWOOM_APP_KEY", "kw-key")
	t.Setenv("C_KIWOOM_APP_SECRET", "kw-secret")
	t.Setenv("C_KIWOOM_ACCOUNT_NO", "87654321")
	t.Setenv("P_HANTOO_APP_KEY", "kis-p-key")
	t.Setenv("P_HANTOO_APP_SECRET", "kis-p-secret")
	t.Setenv("P_HANTOO_ACCOUNT_NO", "12345678-01")
	t.Setenv("C_HANTOO_APP_KEY", "kis-c-key")
	t.Setenv("C_HANTOO_APP_SECRET", "kis-c-secret")
	t.Setenv("C_HANTOO_ACCOUNT_NO", "23456789-01")

	accounts := discoverAccounts()
	if len(accounts) != 3 {
		t.Fatalf("accounts = %d, want 3", len(accounts))
	}

	if accounts[0].Broker != domain.BrokerKIS || accounts[0].AccountType != domain.AccountTypeIndividual {
		t.Errorf("accounts[0] = %s/%s, want kis/individual", accounts[0].Broker, accounts[0].AccountType)
	}
	if accounts[1].Broker != domain.BrokerKIS || accounts[1].AccountType != domain.AccountTypeCorporate {
		t.Errorf("accounts[1] = %s/%s, want kis/corporate", accounts[1].Broker, accounts[1].AccountType)
	}
	if accounts[2].Broker != domain.BrokerKiwoom || accounts[2].AccountType != domain.AccountTypeCorporate {
		t.Errorf("accounts[2] = %s/%s, want kiwoom/corporate", accounts[2].Broker, accounts[2].AccountType)
	}
}

func TestDiscoverAccountsSkipsIncompleteSet(t *testing.T) {
	clearAccountEnv(t)
	t.Setenv("P_HANTOO_APP_KEY", "kis-p-key")
	t.Setenv("P_HANTOO_APP_SECRET", "kis-p-secret")
	// ACCOUNT_NO intentionally missing.

	if accounts := discoverAccounts(); len(accounts) != 0 {
		t.Errorf("accounts = %d, want 0 when a credential part is missing", len(accounts))
	}
}

func TestLabelDefaultsAndOverride(t *testing.T) {
	clearAccountEnv(t)
	os.Unsetenv("LABEL_KIS_INDIVIDUAL")
	os.Unsetenv("LABEL_KIWOOM_CORPORATE")

	if got := labelFor(domain.BrokerKIS, domain.AccountTypeIndividual); got != "한국투자증권(개인)" {
		t.Errorf("label = %q, want default template", got)
	}
	if got := labelFor(domain.BrokerKiwoom, domain.AccountTypeCorporate); got != "키움증권(법인)" {
		t.Errorf("label = %q, want default template", got)
	}

	t.Setenv("LABEL_KIWOOM_CORPORATE", "뮤사이(키움)")
	if got := labelFor(domain.BrokerKiwoom, domain.AccountTypeCorporate); got != "뮤사이(키움)" {
		t.Errorf("label = %q, want env override", got)
	}
}
