package ratefx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public open.er-api.com endpoint.
const DefaultBaseURL = "https://open.er-api.com/v6"

// ErrNoRates is returned when the provider answers successfully but the
// rate table is empty.
var ErrNoRates = errors.New("rate provider returned no rates")

// Client fetches exchange rates from the open.er-api.com API. Rates are
// quoted as foreign units per one unit of the base currency.
type Client struct {
	baseURL    string
	httpClient *http.Client
	delay      time.Duration
	maxRetries int
}

// NewClient creates a new exchange-rate API client.
func NewClient(baseURL string, delay time.Duration, maxRetries int) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		delay:      delay,
		maxRetries: maxRetries,
	}
}

// FetchRates fetches the latest rate table for the given base currency.
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/latest/%s", c.baseURL, base)

	body, err := c.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	// Parse: {"result":"success","base_code":"KRW","rates":{"USD":0.00072,...}}
	var raw struct {
		Result    string             `json:"result"`
		ErrorType string             `json:"error-type"`
		Rates     map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing rate response: %w", err)
	}

	if raw.Result != "success" {
		return nil, fmt.Errorf("rate provider result %q: %s", raw.Result, raw.ErrorType)
	}
	if len(raw.Rates) == 0 {
		return nil, ErrNoRates
	}

	return raw.Rates, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := range c.maxRetries + 1 {
		if attempt > 0 {
			baseDelay := c.delay
			if baseDelay == 0 {
				baseDelay = 5 * time.Second
			}
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating rate request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("rate request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading rate response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("rate provider HTTP %d (attempt %d/%d)", resp.StatusCode, attempt+1, c.maxRetries+1)
			continue
		}

		return nil, fmt.Errorf("rate provider HTTP %d: %s", resp.StatusCode, string(body))
	}

	return nil, lastErr
}
