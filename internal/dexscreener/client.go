// Package dexscreener queries the DexScreener token endpoint for
// trading-pair data. A missing or empty response is a normal "no data
// yet" outcome for freshly launched tokens, not an error.
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"sniper-agent/internal/domain"
	"sniper-agent/internal/observability"
)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.dexscreener.com/latest/dex/tokens"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

// Client fetches trading pairs by token address.
type Client struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
	now        func() time.Time
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts for transport failures.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a DexScreener client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		client:     &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pairs fetches all trading pairs for a token address. The first
// returned pair is the primary one for downstream decisions. A non-200
// response, a malformed body, or an empty pairs array yields an empty
// slice and nil error; only transport failures (after bounded retries)
// surface as errors.
func (c *Client) Pairs(ctx context.Context, address string) ([]domain.MarketSnapshot, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s", c.baseURL, address))
	if err != nil {
		return nil, err
	}
	if body == nil {
		// Non-200: no data for this token yet.
		return nil, nil
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// Malformed body is treated as no data, same as the empty case.
		return nil, nil
	}

	observedAt := c.now().UnixMilli()
	var snapshots []domain.MarketSnapshot
	for _, p := range resp.Pairs {
		price, err := decimal.NewFromString(p.PriceUsd)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, domain.MarketSnapshot{
			Address:      address,
			TokenName:    p.BaseToken.Name,
			Symbol:       p.BaseToken.Symbol,
			PriceUSD:     price,
			Volume24hUSD: decimal.NewFromFloat(p.Volume.H24),
			LiquidityUSD: decimal.NewFromFloat(p.Liquidity.USD),
			PairAddress:  p.PairAddress,
			ObservedAt:   observedAt,
		})
	}

	return snapshots, nil
}

// get performs a GET with bounded retries on transport errors. It
// returns a nil body for non-200 responses, which callers treat as "no
// data". Non-200 responses are not retried.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		observability.RecordExternalCall("dexscreener", time.Since(start).Seconds())
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, nil
		}

		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
