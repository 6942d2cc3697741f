package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/pricing"
)

// PriceService synthesizes cross-chain price quotes for a token.
type PriceService struct {
	provider    domain.MarketDataProvider
	synthesizer *pricing.Synthesizer
	registry    *chains.Registry
	logger      *slog.Logger
}

// NewPriceService creates a PriceService.
func NewPriceService(
	provider domain.MarketDataProvider,
	synthesizer *pricing.Synthesizer,
	registry *chains.Registry,
	logger *slog.Logger,
) *PriceService {
	return &PriceService{
		provider:    provider,
		synthesizer: synthesizer,
		registry:    registry,
		logger:      logger,
	}
}

// Price fetches the token's canonical market data and synthesizes one quote
// per requested chain, plus the best arbitrage spread across the set. An
// absent token defaults to BTC; an empty chain list quotes every chain the
// token is mapped on.
func (s *PriceService) Price(ctx context.Context, token string, requestedChains []string) (domain.PriceReport, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		token = defaultToken
	}
	if len(requestedChains) == 0 {
		requestedChains = s.registry.TokenChains(token)
	}

	snap, _, err := s.provider.TokenMarket(ctx, token)
	if err != nil {
		return domain.PriceReport{}, fmt.Errorf("price_service: fetch %s: %w", token, err)
	}

	quotes, err := s.synthesizer.Quotes(token, snap.CurrentPrice, snap.Volume24h, requestedChains)
	if err != nil {
		return domain.PriceReport{}, err
	}

	arb := pricing.BestSpread(quotes)

	s.logger.DebugContext(ctx, "price_service: synthesized quotes",
		slog.String("token", token),
		slog.Int("chains", len(quotes)),
		slog.Float64("spread", arb.SpreadPercent),
	)

	return domain.PriceReport{
		Token:     token,
		Chains:    quotes,
		Arbitrage: arb,
		MarketData: domain.MarketSummary{
			CurrentPrice: snap.CurrentPrice,
			Volume24h:    snap.Volume24h,
			MarketCap:    snap.MarketCap,
			Change24h:    snap.Change24h,
		},
	}, nil
}
