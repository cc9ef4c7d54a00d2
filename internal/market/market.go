// Package market wraps the Finnhub market data provider: per-symbol quote
// history, company profile/statistics, and the economic calendar.
package market

import (
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// Client talks to Finnhub. Quote history and company profile go through the
// official SDK; the economic calendar endpoint is called directly because the
// SDK does not expose the date-window parameters.
type Client struct {
	api        *finnhub.DefaultApiService
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the calendar endpoint base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client used for direct calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new market data client.
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)

	c := &Client{
		api:        finnhub.NewAPIClient(cfg).DefaultApi,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
