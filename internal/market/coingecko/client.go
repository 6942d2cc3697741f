// Package coingecko implements domain.MarketDataProvider against the public
// CoinGecko REST API. Transport failures, non-success statuses, and open
// circuit breakers all surface as domain.ErrUpstreamUnavailable so callers
// can treat them as retryable.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client is the REST client for the CoinGecko markets API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	registry   *chains.Registry
}

// NewClient creates a new CoinGecko client. An empty baseURL falls back to
// the public API; an empty apiKey uses the keyless public tier. The circuit
// breaker opens after repeated consecutive failures so a flapping upstream
// fails fast instead of stacking timeouts.
func NewClient(baseURL, apiKey string, registry *chains.Registry) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "coingecko",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		registry: registry,
	}
}

// TopMarkets returns a snapshot of the top tokens by market cap, with 1h,
// 24h, and 7d change windows attached.
func (c *Client) TopMarkets(ctx context.Context, limit int) ([]domain.TokenSnapshot, error) {
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("page", "1")
	params.Set("price_change_percentage", "1h,24h,7d")

	body, err := c.doGet(ctx, "/coins/markets?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("coingecko: top markets: %w", err)
	}

	var coins []APICoin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, fmt.Errorf("coingecko: decode markets: %w", err)
	}

	snapshots := make([]domain.TokenSnapshot, 0, len(coins))
	for i := range coins {
		snapshots = append(snapshots, coins[i].ToDomainSnapshot())
	}
	return snapshots, nil
}

// TokenMarket returns one supported token's snapshot plus its 7d sparkline
// price history (oldest first).
func (c *Client) TokenMarket(ctx context.Context, symbol string) (domain.TokenSnapshot, []float64, error) {
	coinID, ok := c.registry.CoinID(symbol)
	if !ok {
		return domain.TokenSnapshot{}, nil, fmt.Errorf("coingecko: token %q: %w", symbol, domain.ErrUnsupportedToken)
	}

	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("ids", coinID)
	params.Set("sparkline", "true")
	params.Set("price_change_percentage", "1h,24h,7d")

	body, err := c.doGet(ctx, "/coins/markets?"+params.Encode())
	if err != nil {
		return domain.TokenSnapshot{}, nil, fmt.Errorf("coingecko: token market %s: %w", symbol, err)
	}

	var coins []APICoin
	if err := json.Unmarshal(body, &coins); err != nil {
		return domain.TokenSnapshot{}, nil, fmt.Errorf("coingecko: decode token market: %w", err)
	}
	if len(coins) == 0 {
		return domain.TokenSnapshot{}, nil, fmt.Errorf("coingecko: token market %s: empty response: %w", symbol, domain.ErrUpstreamUnavailable)
	}

	var history []float64
	if coins[0].Sparkline != nil {
		history = coins[0].Sparkline.Price
	}
	return coins[0].ToDomainSnapshot(), history, nil
}

// doGet sends a GET request through the circuit breaker and returns the
// response body on 2xx.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-cg-demo-api-key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read response: %v", domain.ErrUpstreamUnavailable, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, body)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open", domain.ErrUpstreamUnavailable)
		}
		return nil, err
	}
	return result.([]byte), nil
}

// Compile-time interface check.
var _ domain.MarketDataProvider = (*Client)(nil)
