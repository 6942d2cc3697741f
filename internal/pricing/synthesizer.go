// Package pricing synthesizes per-chain prices for a token from its canonical
// price, and detects the best arbitrage spread across the synthesized quotes.
package pricing

import (
	"fmt"
	"math/rand"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

const (
	// minProfitableSpread is the spread (percent) a quote set must exceed for
	// the arbitrage to be flagged profitable.
	minProfitableSpread = 1.0

	// noiseBound bounds the symmetric random variation at ±0.2%.
	noiseBound = 0.002

	// volumeImpactScale sets the magnitude of the volume term; the impact
	// shrinks as 24h volume grows.
	volumeImpactScale = 0.003
)

// NoiseSource yields a random value in [-1, 1). Pricing multiplies it by
// noiseBound, so a source pinned to zero makes synthesis fully deterministic
// for tests.
type NoiseSource func() float64

// DefaultNoise uses math/rand's shared source.
func DefaultNoise() float64 {
	return rand.Float64()*2 - 1
}

// NoNoise disables the random variation.
func NoNoise() float64 { return 0 }

// Synthesizer derives per-chain quotes through the chain registry.
type Synthesizer struct {
	registry *chains.Registry
	noise    NoiseSource
}

// NewSynthesizer creates a Synthesizer. A nil noise source falls back to
// DefaultNoise.
func NewSynthesizer(registry *chains.Registry, noise NoiseSource) *Synthesizer {
	if noise == nil {
		noise = DefaultNoise
	}
	return &Synthesizer{registry: registry, noise: noise}
}

// Quotes synthesizes one quote per requested chain that has a wrapped-symbol
// mapping for the token. Chains without a mapping are silently excluded; an
// empty result set is a client error, since no requested chain supports the
// token.
func (s *Synthesizer) Quotes(token string, basePrice, volume24h float64, requested []string) (map[string]domain.ChainPriceQuote, error) {
	quotes := make(map[string]domain.ChainPriceQuote, len(requested))
	for _, chain := range requested {
		wrapped, ok := s.registry.WrappedSymbol(token, chain)
		if !ok {
			continue
		}
		info := s.registry.ChainOrDefault(chain)
		quotes[chain] = domain.ChainPriceQuote{
			Chain:           chain,
			WrappedSymbol:   wrapped,
			Price:           basePrice * (info.PriceFactor + volumeImpact(volume24h) + s.noise()*noiseBound),
			SlippagePercent: info.SlippagePercent,
			Venue:           info.Venue,
		}
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("token %s on chains %v: %w", token, requested, domain.ErrNoChainSupport)
	}
	return quotes, nil
}

// BestSpread computes the arbitrage opportunity across a quote set: buy on
// the cheapest chain, sell on the most expensive.
func BestSpread(quotes map[string]domain.ChainPriceQuote) domain.ArbitrageOpportunity {
	var buyChain, sellChain string
	var min, max float64
	for chain, q := range quotes {
		if buyChain == "" || q.Price < min || (q.Price == min && chain < buyChain) {
			buyChain, min = chain, q.Price
		}
		if sellChain == "" || q.Price > max || (q.Price == max && chain < sellChain) {
			sellChain, max = chain, q.Price
		}
	}
	if buyChain == "" || min <= 0 {
		return domain.ArbitrageOpportunity{}
	}

	spread := (max - min) / min * 100
	return domain.ArbitrageOpportunity{
		SpreadPercent: spread,
		BuyChain:      buyChain,
		SellChain:     sellChain,
		Profitable:    spread > minProfitableSpread,
	}
}

// volumeImpact is a bounded positive term that shrinks with 24h volume: thin
// markets price further from the canonical price than deep ones.
func volumeImpact(volume24h float64) float64 {
	if volume24h < 0 {
		volume24h = 0
	}
	return volumeImpactScale / (1 + volume24h/1e9)
}
