package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

func newTestSynthesizer() *Synthesizer {
	return NewSynthesizer(chains.NewRegistry(), NoNoise)
}

func TestQuotes_DeterministicWithoutNoise(t *testing.T) {
	s := newTestSynthesizer()

	quotes, err := s.Quotes("BTC", 65000, 2e9, []string{"ethereum", "bsc"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	// impact = 0.003 / (1 + 2) = 0.001
	impact := 0.001
	assert.InDelta(t, 65000*(1.0+impact), quotes["ethereum"].Price, 1e-6)
	assert.InDelta(t, 65000*(0.9985+impact), quotes["bsc"].Price, 1e-6)

	assert.Equal(t, "WBTC", quotes["ethereum"].WrappedSymbol)
	assert.Equal(t, "BTCB", quotes["bsc"].WrappedSymbol)
	assert.Equal(t, "uniswap-v3", quotes["ethereum"].Venue)
	assert.Equal(t, "pancakeswap", quotes["bsc"].Venue)
}

func TestQuotes_ExcludesUnmappedChains(t *testing.T) {
	s := newTestSynthesizer()

	// SOL wraps on solana and ethereum only; bsc is silently dropped.
	quotes, err := s.Quotes("SOL", 150, 1e9, []string{"solana", "ethereum", "bsc"})
	require.NoError(t, err)

	assert.Len(t, quotes, 2)
	assert.Contains(t, quotes, "solana")
	assert.Contains(t, quotes, "ethereum")
	assert.NotContains(t, quotes, "bsc")
}

func TestQuotes_NoSupportedChainIsClientError(t *testing.T) {
	s := newTestSynthesizer()

	_, err := s.Quotes("SOL", 150, 1e9, []string{"bsc", "polygon"})
	assert.ErrorIs(t, err, domain.ErrNoChainSupport)
}

func TestQuotes_VolumeImpactShrinksWithDepth(t *testing.T) {
	s := newTestSynthesizer()

	thin, err := s.Quotes("BTC", 65000, 0, []string{"ethereum"})
	require.NoError(t, err)
	deep, err := s.Quotes("BTC", 65000, 50e9, []string{"ethereum"})
	require.NoError(t, err)

	assert.Greater(t, thin["ethereum"].Price, deep["ethereum"].Price)
}

func TestBestSpread_BuyLowSellHigh(t *testing.T) {
	quotes := map[string]domain.ChainPriceQuote{
		"ethereum": {Chain: "ethereum", Price: 100.0},
		"bsc":      {Chain: "bsc", Price: 98.0},
		"polygon":  {Chain: "polygon", Price: 99.0},
	}

	opp := BestSpread(quotes)

	assert.Equal(t, "bsc", opp.BuyChain)
	assert.Equal(t, "ethereum", opp.SellChain)
	assert.InDelta(t, (100.0-98.0)/98.0*100, opp.SpreadPercent, 1e-9)
	assert.True(t, opp.Profitable)
}

func TestBestSpread_ProfitableOnlyAboveOnePercent(t *testing.T) {
	quotes := map[string]domain.ChainPriceQuote{
		"ethereum": {Price: 100.0},
		"bsc":      {Price: 99.5},
	}

	opp := BestSpread(quotes)
	assert.False(t, opp.Profitable)
	assert.Greater(t, opp.SpreadPercent, 0.0)
}

func TestBestSpread_TieBreaksOnChainName(t *testing.T) {
	quotes := map[string]domain.ChainPriceQuote{
		"polygon":  {Price: 100.0},
		"arbitrum": {Price: 100.0},
		"bsc":      {Price: 100.0},
	}

	opp := BestSpread(quotes)
	assert.Equal(t, "arbitrum", opp.BuyChain)
	assert.Equal(t, "arbitrum", opp.SellChain)
	assert.Equal(t, 0.0, opp.SpreadPercent)
	assert.False(t, opp.Profitable)
}

func TestBestSpread_EmptyQuotes(t *testing.T) {
	opp := BestSpread(nil)
	assert.Equal(t, domain.ArbitrageOpportunity{}, opp)
}
