package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/musaihq/holdings/internal/domain"
)

// Account is one set of brokerage credentials discovered from the
// environment. Credentials are loaded once per run and never logged in full.
type Account struct {
	Prefix      string
	Broker      domain.BrokerKind
	AccountType domain.AccountType
	AppKey      string
	AppSecret   string
	AccountNo   string
	Label       string
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	KISBaseURL      string
	KiwoomBaseURL   string
	RateAPIURL      string
	HomeCurrency    string
	RateRetryMax    int
	RateRetryDelay  time.Duration
	RefreshInterval time.Duration
	HTTPPort        string
	APIKey          string
	TokenStoreDir   string
	DebugDir        string
	SnapshotPath    string
	XLSXPath        string
	SheetsCredFile  string
	SpreadsheetID   string
	Accounts        []Account
}

// Load reads configuration from environment variables with sensible
// defaults. A local .env file is merged in first when present.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	return Config{
		KISBaseURL:      envOrDefault("KIS_BASE_URL", "https://openapi.koreainvestment.com:9443"),
		KiwoomBaseURL:   envOrDefault("KIWOOM_BASE_URL", "https://api.kiwoom.com"),
		RateAPIURL:      envOrDefault("RATE_API_URL", "https://open.er-api.com/v6"),
		HomeCurrency:    envOrDefault("HOME_CURRENCY", "KRW"),
		RateRetryMax:    envOrDefaultInt("RATE_RETRY_MAX", 3),
		RateRetryDelay:  envOrDefaultDuration("RATE_RETRY_DELAY", 5*time.Second),
		RefreshInterval: envOrDefaultDuration("REFRESH_INTERVAL", 10*time.Minute),
		HTTPPort:        envOrDefault("HTTP_PORT", "8080"),
		APIKey:          envOrDefaultWarn("HOLDINGS_API_KEY", ""),
		TokenStoreDir:   envOrDefault("TOKEN_STORE_DIR", ""),
		DebugDir:        envOrDefault("HOLDINGS_DEBUG_DIR", ""),
		SnapshotPath:    envOrDefault("SNAPSHOT_PATH", "portfolio_unified.json"),
		XLSXPath:        envOrDefault("XLSX_PATH", ""),
		SheetsCredFile:  envOrDefault("SHEETS_CREDENTIALS_FILE", ""),
		SpreadsheetID:   envOrDefault("SPREADSHEET_ID", ""),
		Accounts:        discoverAccounts(),
	}
}

// prefixes and brokers are scanned in a fixed order so that collection
// iterates accounts deterministically.
var prefixes = []struct {
	prefix      string
	accountType domain.AccountType
}{
	{"P", domain.AccountTypeIndividual},
	{"C", domain.AccountTypeCorporate},
}

var brokers = []struct {
	kind   domain.BrokerKind
	suffix string
}{
	{domain.BrokerKIS, "HANTOO"},
	{domain.BrokerKiwoom, "KIWOOM"},
}

// discoverAccounts scans the environment for credential sets named
// {PREFIX}_{HANTOO|KIWOOM}_{APP_KEY,APP_SECRET,ACCOUNT_NO}. A set missing
// any of the three parts is skipped.
func discoverAccounts() []Account {
	var accounts []Account
	for _, b := range brokers {
		for _, p := range prefixes {
			appKey := os.Getenv(fmt.Sprintf("%s_%s_APP_KEY", p.prefix, b.suffix))
			appSecret := os.Getenv(fmt.Sprintf("%s_%s_APP_SECRET", p.prefix, b.suffix))
			accountNo := os.Getenv(fmt.Sprintf("%s_%s_ACCOUNT_NO", p.prefix, b.suffix))
			if appKey == "" || appSecret == "" || accountNo == "" {
				continue
			}

			accounts = append(accounts, Account{
				Prefix:      p.prefix,
				Broker:      b.kind,
				AccountType: p.accountType,
				AppKey:      appKey,
				AppSecret:   appSecret,
				AccountNo:   accountNo,
				Label:       labelFor(b.kind, p.accountType),
			})
		}
	}
	if len(accounts) == 0 {
		slog.Warn("no brokerage accounts configured")
	}
	return accounts
}

// labelFor resolves the display label of an account. The default is
// "{broker}({type})" in Korean; LABEL_{BROKER}_{TYPE} env vars override it.
func labelFor(broker domain.BrokerKind, accountType domain.AccountType) string {
	key := fmt.Sprintf("LABEL_%s_%s", strings.ToUpper(string(broker)), strings.ToUpper(string(accountType)))
	if v := os.Getenv(key); v != "" {
		return v
	}

	typeName := "개인"
	if accountType == domain.AccountTypeCorporate {
		typeName = "법인"
	}
	return fmt.Sprintf("%s(%s)", broker.Display(), typeName)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
