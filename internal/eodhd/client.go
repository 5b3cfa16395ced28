package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the EODHD API.
	DefaultBaseURL = "https://eodhd.com/api"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10

	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Client is an EODHD API client. The pipeline only needs daily closes and
// symbol news, so the surface is limited to those two endpoints; every query
// is daily-period, ascending-order, over an explicit date range.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new EODHD API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetEOD retrieves daily end-of-day price data for a symbol over [from, to],
// oldest first. Symbol format: TICKER.EXCHANGE (e.g., "AAPL.US", "GNP.AU").
func (c *Client) GetEOD(ctx context.Context, symbol string, from, to time.Time) (EODResponse, error) {
	params := url.Values{}
	params.Set("period", "d")
	params.Set("order", "a")
	if !from.IsZero() {
		params.Set("from", from.Format(dateLayout))
	}
	if !to.IsZero() {
		params.Set("to", to.Format(dateLayout))
	}

	var result EODResponse
	if err := c.get(ctx, "/eod/"+symbol, params, &result); err != nil {
		return nil, err
	}

	for i := range result {
		if t, err := time.Parse(dateLayout, result[i].DateStr); err == nil {
			result[i].Date = t
		}
	}

	return result, nil
}

// GetNews retrieves news articles for a symbol over [from, to]. The provider
// caps a single page at 1000 articles; limit <= 0 requests that maximum.
func (c *Client) GetNews(ctx context.Context, symbol string, from, to time.Time, limit int) (NewsResponse, error) {
	if limit <= 0 {
		limit = 1000
	}

	params := url.Values{}
	params.Set("s", symbol)
	params.Set("limit", fmt.Sprintf("%d", limit))
	if !from.IsZero() {
		params.Set("from", from.Format(dateLayout))
	}
	if !to.IsZero() {
		params.Set("to", to.Format(dateLayout))
	}

	var result NewsResponse
	if err := c.get(ctx, "/news", params, &result); err != nil {
		return nil, err
	}

	// News timestamps arrive with or without a time component
	for i := range result {
		if t, err := time.Parse(datetimeLayout, result[i].DateStr); err == nil {
			result[i].Date = t
		} else if t, err := time.Parse(dateLayout, result[i].DateStr); err == nil {
			result[i].Date = t
		}
	}

	return result, nil
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: time.Second}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("EODHD API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
