package domain

import "context"

// MarketDataProvider supplies the market snapshots the pipeline consumes. The
// production implementation calls a public market-data API; tests inject
// fixtures. A failed fetch must surface as ErrUpstreamUnavailable so callers
// can distinguish retryable outages from bad input.
type MarketDataProvider interface {
	// TopMarkets returns a snapshot of the top tokens by market cap.
	TopMarkets(ctx context.Context, limit int) ([]TokenSnapshot, error)

	// TokenMarket returns one token's snapshot plus its recent price history
	// (oldest first), used by the oscillator. The symbol must be in the
	// supported set; unknown symbols return ErrUnsupportedToken.
	TokenMarket(ctx context.Context, symbol string) (TokenSnapshot, []float64, error)
}
