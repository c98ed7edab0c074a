package kis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/musaihq/holdings/internal/broker"
	"github.com/musaihq/holdings/internal/domain"
	"github.com/musaihq/holdings/internal/token"
)

const (
	// DefaultBaseURL is the KIS production OpenAPI endpoint.
	DefaultBaseURL = "https://openapi.koreainvestment.com:9443"

	pathToken           = "/oauth2/tokenP"
	pathDomesticBalance = "/uapi/domestic-stock/v1/trading/inquire-balance"
	pathOverseasBalance = "/uapi/overseas-stock/v1/trading/inquire-present-balance"

	// Transaction IDs are fixed per endpoint by the KIS API contract.
	trDomesticBalance = "TTTC8434R"
	trOverseasBalance = "CTRP6504R"

	brokerName = "KIS"
)

// Config holds one KIS account's connection settings.
type Config struct {
	BaseURL     string
	AppKey      string
	AppSecret   string
	AccountNo   string
	AccountType domain.AccountType
	Label       string
	DebugDir    string
}

// Client talks to the KIS OpenAPI for a single account.
type Client struct {
	http      *broker.Client
	tokens    *token.Cache
	appKey    string
	appSecret string
	cano      string
	prdtCd    string
	acct      domain.AccountContext
	debugDir  string
}

// New creates a KIS client. The token cache is shared across clients so
// credentials with the same cache key reuse one token.
func New(cfg Config, tokens *token.Cache) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cano, prdtCd := SplitAccount(cfg.AccountNo)
	return &Client{
		http:      broker.NewClient(baseURL, 2),
		tokens:    tokens,
		appKey:    cfg.AppKey,
		appSecret: cfg.AppSecret,
		cano:      cano,
		prdtCd:    prdtCd,
		acct: domain.AccountContext{
			Broker:      domain.BrokerKIS,
			AccountType: cfg.AccountType,
			Label:       cfg.Label,
		},
		debugDir: cfg.DebugDir,
	}
}

// SplitAccount splits a KIS account number into the 8-digit account prefix
// and the product-code suffix. Canonical form: split on "-" when present,
// otherwise first 8 characters are the prefix.
func SplitAccount(account string) (cano, prdtCd string) {
	account = strings.TrimSpace(account)
	if before, after, found := strings.Cut(account, "-"); found {
		return before, after
	}
	if len(account) <= 8 {
		return account, ""
	}
	return account[:8], account[8:]
}

// Account returns the account context stamped onto normalized records.
func (c *Client) Account() domain.AccountContext { return c.acct }

func (c *Client) cacheKey() string {
	return fmt.Sprintf("token_kis_%s_%s", c.acct.AccountType, c.cano)
}

// Authenticate returns a valid access token, issuing one if needed.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	return c.tokens.GetToken(ctx, c.cacheKey(), c.issueToken)
}

func (c *Client) issueToken(ctx context.Context) (token.Token, error) {
	body := map[string]string{
		"grant_type": "client_credentials",
		"appkey":     c.appKey,
		"appsecret":  c.appSecret,
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

	ttl := time.Duration(resp.ExpiresIn) * time.Second
	return token.Token{
		Value:     tok,
		ExpiresAt: domain.NowKST().Add(ttl - token.ExpiryBuffer),
	}, nil
}

// request issues one authenticated call and enforces the KIS success
// convention: HTTP 200 with body rt_cd == "0". Anything else is a failed
// call, including a "failure" rt_cd inside a 200 response.
func (c *Client) request(ctx context.Context, path, trID string, query url.Values, dest interface{ resultCode() (string, string) }) error {
	accessToken, err := c.Authenticate(ctx)
	if err != nil {
		return err
	}

	headers := map[string]string{
		"authorization": "Bearer " + accessToken,
		"appkey":        c.appKey,
		"appsecret":     c.appSecret,
		"tr_id":         trID,
	}

	raw, status, err := c.http.Do(ctx, http.MethodGet, path, headers, query, nil)
	if err != nil {
		return &broker.FetchError{Broker: brokerName, Endpoint: path, Err: err}
	}
	if status != http.StatusOK {
		return &broker.FetchError{
			Broker: brokerName, Endpoint: path, Status: status,
			Err: fmt.Errorf("%s", raw),
		}
	}

	broker.DumpPayload(c.debugDir, "kis_"+trID, raw)

	if err := json.Unmarshal(raw, dest); err != nil {
		return &broker.ParseError{Broker: brokerName, Endpoint: path, Err: err}
	}
	if code, msg := dest.resultCode(); code != "0" {
		return &broker.FetchError{
			Broker: brokerName, Endpoint: path, Status: status,
			Err: fmt.Errorf("rt_cd=%s: %s", code, msg),
		}
	}
	return nil
}

func (r *domesticResponse) resultCode() (string, string) { return r.RtCd, r.Msg1 }
func (r *overseasResponse) resultCode() (string, string) { return r.RtCd, r.Msg1 }

// FetchDomesticHoldings retrieves and normalizes the domestic stock balance.
func (c *Client) FetchDomesticHoldings(ctx context.Context) ([]domain.AssetRecord, error) {
	query := url.Values{
		"CANO":                  {c.cano},
		"ACNT_PRDT_CD":          {c.prdtCd},
		"AFHR_FLPR_YN":          {"N"},
		"OFL_YN":                {""},
		"INQR_DVSN":             {"02"},
		"UNPR_DVSN":             {"01"},
		"FUND_STTL_ICLD_YN":     {"N"},
		"FNCG_AMT_AUTO_RDPT_YN": {"N"},
		"PRCS_DVSN":             {"00"},
		"CTX_AREA_FK100":        {""},
		"CTX_AREA_NK100":        {""},
	}

	var resp domesticResponse
	if err := c.request(ctx, pathDomesticBalance, trDomesticBalance, query, &resp); err != nil {
		return nil, err
	}
	return ParseDomestic(&resp, c.acct), nil
}

// FetchOverseasHoldings retrieves and normalizes the overseas present
// balance (settled basis, foreign currency).
func (c *Client) FetchOverseasHoldings(ctx context.Context) ([]domain.AssetRecord, error) {
	query := url.Values{
		"CANO":              {c.cano},
		"ACNT_PRDT_CD":      {c.prdtCd},
		"WCRC_FRCR_DVSN_CD": {"02"},
		"TR_MKET_CD":        {"00"},
		"NATN_CD":           {"000"},
		"INQR_DVSN_CD":      {"00"},
	}

	var resp overseasResponse
	if err := c.request(ctx, pathOverseasBalance, trOverseasBalance, query, &resp); err != nil {
		return nil, err
	}
	return ParseOverseas(&resp, c.acct), nil
}
