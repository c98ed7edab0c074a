package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// RequestTimeout is the fixed deadline for every broker HTTP call. A timed
// out call degrades exactly like any other failed fetch.
const RequestTimeout = 20 * time.Second

// Client is the shared HTTP transport for broker REST APIs. Broker packages
// wrap it with endpoint-specific headers and response schemas.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a broker transport. rps bounds the request rate per
// broker; brokers throttle aggressively and a burst of balance calls can
// trip their limits.
func NewClient(baseURL string, rps float64) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Do issues one request and returns the raw response body and status code.
// Non-2xx statuses are returned to the caller, not treated as transport
// errors: brokers embed failure semantics in both layers and only the
// caller knows how to read them.
func (c *Client) Do(ctx context.Context, method, path string, headers map[string]string, query url.Values, body any) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("executing request: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// MaskKey truncates a credential for log output. Only a short prefix is
// ever logged.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
