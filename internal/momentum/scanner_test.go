package momentum

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

func newTestScanner() *Scanner {
	return NewScanner(chains.NewRegistry())
}

func TestScan_FiltersByThreshold(t *testing.T) {
	universe := []domain.TokenSnapshot{
		{Symbol: "BTC", Name: "Bitcoin", Change24h: ptr(8.0)},
		{Symbol: "ETH", Name: "Ethereum", Change24h: ptr(3.0)},
		{Symbol: "SOL", Name: "Solana", Change24h: ptr(-6.0)},
		{Symbol: "XRP", Name: "Ripple", Change24h: nil},
	}

	report, err := newTestScanner().Scan(universe, 5.0, domain.Timeframe24h)
	require.NoError(t, err)

	assert.True(t, report.MomentumDetected)
	assert.Equal(t, 2, report.Found)
	require.Len(t, report.Tokens, 2)

	symbols := []string{report.Tokens[0].Symbol, report.Tokens[1].Symbol}
	assert.ElementsMatch(t, []string{"BTC", "SOL"}, symbols)
}

func TestScan_SortedByScoreDescending(t *testing.T) {
	universe := []domain.TokenSnapshot{
		{Symbol: "A", Change24h: ptr(6.0)},
		{Symbol: "B", Change24h: ptr(30.0)},
		{Symbol: "C", Change24h: ptr(12.0)},
	}

	report, err := newTestScanner().Scan(universe, 5.0, domain.Timeframe24h)
	require.NoError(t, err)
	require.Len(t, report.Tokens, 3)

	assert.Equal(t, "B", report.Tokens[0].Symbol)
	assert.Equal(t, "C", report.Tokens[1].Symbol)
	assert.Equal(t, "A", report.Tokens[2].Symbol)
	for i := 1; i < len(report.Tokens); i++ {
		assert.GreaterOrEqual(t, report.Tokens[i-1].Score, report.Tokens[i].Score)
	}
}

func TestScan_TruncatesToTopTen(t *testing.T) {
	universe := make([]domain.TokenSnapshot, 0, 20)
	for i := 0; i < 20; i++ {
		change := 6.0 + float64(i)
		universe = append(universe, domain.TokenSnapshot{
			Symbol:    fmt.Sprintf("T%02d", i),
			Change24h: &change,
		})
	}

	report, err := newTestScanner().Scan(universe, 5.0, domain.Timeframe24h)
	require.NoError(t, err)

	assert.Equal(t, 20, report.Found)
	assert.Len(t, report.Tokens, 10)
	assert.Equal(t, "T19", report.Tokens[0].Symbol)
}

func TestScan_NoMatches(t *testing.T) {
	universe := []domain.TokenSnapshot{
		{Symbol: "BTC", Change24h: ptr(1.0)},
	}

	report, err := newTestScanner().Scan(universe, 5.0, domain.Timeframe24h)
	require.NoError(t, err)

	assert.False(t, report.MomentumDetected)
	assert.Equal(t, 0, report.Found)
	assert.Empty(t, report.Tokens)
}

func TestScan_DefaultsApplied(t *testing.T) {
	universe := []domain.TokenSnapshot{
		{Symbol: "BTC", Change24h: ptr(6.0)},
	}

	report, err := newTestScanner().Scan(universe, 0, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultThreshold, report.Threshold)
	assert.Equal(t, DefaultTimeframe, report.Timeframe)
	assert.Equal(t, 1, report.Found)
}

func TestScan_UnknownTimeframe(t *testing.T) {
	_, err := newTestScanner().Scan(nil, 5.0, "30m")
	assert.ErrorIs(t, err, domain.ErrUnsupportedTimeframe)
}

func TestScan_FourHourIsAnalysisOnly(t *testing.T) {
	_, err := newTestScanner().Scan(nil, 5.0, domain.Timeframe4h)
	assert.ErrorIs(t, err, domain.ErrUnsupportedTimeframe)
}

func TestScan_ChainsResolvedThroughRegistry(t *testing.T) {
	universe := []domain.TokenSnapshot{
		{Symbol: "BTC", Change24h: ptr(10.0)},
		{Symbol: "DOGE", Change24h: ptr(10.0)},
	}

	report, err := newTestScanner().Scan(universe, 5.0, domain.Timeframe24h)
	require.NoError(t, err)
	require.Len(t, report.Tokens, 2)

	byToken := map[string][]string{}
	for _, r := range report.Tokens {
		byToken[r.Symbol] = r.Chains
	}
	assert.Contains(t, byToken["BTC"], "ethereum")
	assert.Contains(t, byToken["BTC"], "avalanche")
	assert.Equal(t, []string{"ethereum", "bsc"}, byToken["DOGE"])
}
