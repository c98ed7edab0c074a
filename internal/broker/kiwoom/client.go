package kiwoom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/musaihq/holdings/internal/broker"
	"github.com/musaihq/holdings/internal/domain"
	"github.com/musaihq/holdings/internal/token"
)

const (
	// DefaultBaseURL is the Kiwoom production REST endpoint.
	DefaultBaseURL = "https://api.kiwoom.com"

	pathToken   = "/oauth2/token"
	pathAccount = "/api/dostk/acnt"

	// apiDailyBalance is the daily balance / return-rate inquiry.
	apiDailyBalance = "ka01690"

	// defaultTokenTTL applies when expires_dt is missing or unparseable.
	defaultTokenTTL = 30 * time.Minute

	expiresDtLayout = "20060102150405"

	brokerName = "Kiwoom"
)

// Config holds one Kiwoom account's connection settings.
type Config struct {
	BaseURL     string
	AppKey      string
	AppSecret   string
	AccountNo   string
	AccountType domain.AccountType
	Label       string
	DebugDir    string
}

// Client talks to the Kiwoom REST API for a single account. Kiwoom has no
// overseas balance endpoint in this integration; only domestic holdings
// are fetched.
type Client struct {
	http      *broker.Client
	tokens    *token.Cache
	appKey    string
	appSecret string
	accountNo string
	acct      domain.AccountContext
	debugDir  string
	today     func() string
}

// New creates a Kiwoom client sharing the given token cache.
func New(cfg Config, tokens *token.Cache) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:      broker.NewClient(baseURL, 2),
		tokens:    tokens,
		appKey:    cfg.AppKey,
		appSecret: cfg.AppSecret,
		accountNo: cfg.AccountNo,
		acct: domain.AccountContext{
			Broker:      domain.BrokerKiwoom,
			AccountType: cfg.AccountType,
			Label:       cfg.Label,
		},
		debugDir: cfg.DebugDir,
		today:    domain.TodayKST,
	}
}

// Account returns the account context stamped onto normalized records.
func (c *Client) Account() domain.AccountContext { return c.acct }

func (c *Client) cacheKey() string {
	return fmt.Sprintf("token_kiwoom_%s", c.acct.AccountType)
}

// Authenticate returns a valid access token, issuing one if needed.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	return c.tokens.GetToken(ctx, c.cacheKey(), c.issueToken)
}

func (c *Client) issueToken(ctx context.Context) (token.Token, error) {
	body := map[string]string{
		"grant_type": "client_credentials",
		"appkey":     c.appKey,
		"secretkey":  c.appSecret,
	}

	raw, status, err := c.http.Do(ctx, http.MethodPost, pathToken, nil, nil, body)
	if err != nil {
		return token.Token{}, &broker.AuthError{Broker: brokerName, Err: err}
	}
	if status != http.StatusOK {
		return token.Token{}, &broker.AuthError{
			Broker: brokerName,
			Err:    fmt.Errorf("token endpoint returned HTTP %d: %s", status, raw),
		}
	}

	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return token.Token{}, &broker.AuthError{Broker: brokerName, Err: fmt.Errorf("parsing token response: %w", err)}
	}
	tok := resp.token()
	if tok == "" {
		return token.Token{}, &broker.AuthError{Broker: brokerName, Err: fmt.Errorf("token response missing access token")}
	}

	return token.Token{
		Value:     tok,
		ExpiresAt: computeExpiry(resp.ExpiresDt, domain.NowKST()),
	}, nil
}

// computeExpiry turns Kiwoom's absolute expires_dt into an effective expiry.
// An unparseable or missing timestamp falls back to the default TTL. The
// renewal buffer is subtracted in both cases.
func computeExpiry(expiresDt string, issuedAt time.Time) time.Time {
	if expiresDt != "" {
		if t, err := time.ParseInLocation(expiresDtLayout, expiresDt, domain.KST); err == nil {
			return t.Add(-token.ExpiryBuffer)
		}
	}
	return issuedAt.Add(defaultTokenTTL - token.ExpiryBuffer)
}

// FetchDomesticHoldings retrieves and normalizes today's daily balance.
// The continuation-cursor headers must be present (empty) even though a
// single page covers the whole balance.
func (c *Client) FetchDomesticHoldings(ctx context.Context) ([]domain.AssetRecord, error) {
	accessToken, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"authorization": "Bearer " + accessToken,
		"cont-yn":       "N",
		"next-key":      "",
		"api-id":        apiDailyBalance,
	}
	body := map[string]string{"qry_dt": c.today()}

	raw, status, err := c.http.Do(ctx, http.MethodPost, pathAccount, headers, nil, body)
	if err != nil {
		return nil, &broker.FetchError{Broker: brokerName, Endpoint: pathAccount, Err: err}
	}
	if status != http.StatusOK {
		return nil, &broker.FetchError{
			Broker: brokerName, Endpoint: pathAccount, Status: status,
			Err: fmt.Errorf("%s", raw),
		}
	}

	broker.DumpPayload(c.debugDir, "kiwoom_domestic", raw)

	var resp balanceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &broker.ParseError{Broker: brokerName, Endpoint: pathAccount, Err: err}
	}
	return ParseDomestic(&resp, c.acct), nil
}
