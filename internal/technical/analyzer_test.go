package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func fullSnapshot() domain.TokenSnapshot {
	return domain.TokenSnapshot{
		Symbol:       "BTC",
		Name:         "Bitcoin",
		CurrentPrice: 65000,
		Volume24h:    2e9,
		MarketCap:    1.2e12,
		Change1h:     ptr(1.5),
		Change24h:    ptr(6.0),
		Change7d:     ptr(12.0),
	}
}

func TestAnalyze_DefaultTimeframes(t *testing.T) {
	report := NewAnalyzer().Analyze("BTC", nil, fullSnapshot(), nil)

	assert.Equal(t, "BTC", report.Token)
	// 4h has no snapshot data and is omitted, 1h and 24h remain.
	assert.Len(t, report.Timeframes, 2)
	assert.Contains(t, report.Timeframes, domain.Timeframe1h)
	assert.Contains(t, report.Timeframes, domain.Timeframe24h)
	assert.NotContains(t, report.Timeframes, domain.Timeframe4h)
}

func TestAnalyze_OmitsWindowsWithoutData(t *testing.T) {
	snap := fullSnapshot()
	snap.Change1h = nil

	report := NewAnalyzer().Analyze("BTC", []domain.Timeframe{domain.Timeframe1h, domain.Timeframe24h}, snap, nil)

	assert.Len(t, report.Timeframes, 1)
	obs, ok := report.Timeframes[domain.Timeframe24h]
	require.True(t, ok)
	assert.Equal(t, 6.0, obs.PercentChange)
	assert.Equal(t, domain.TrendBullish, obs.Trend)
}

func TestAnalyze_ScoreIsMeanOfContributions(t *testing.T) {
	snap := fullSnapshot()

	report := NewAnalyzer().Analyze("BTC", []domain.Timeframe{domain.Timeframe24h}, snap, nil)

	// Single window: price term 6*5=30, volume term min(2*10, 50)=20.
	assert.InDelta(t, 50.0, report.MomentumScore, 1e-9)
	assert.Equal(t, "strong", report.Status)
	assert.Equal(t, "buy", report.Recommendation)
	assert.Equal(t, "medium", report.RiskLevel)
}

func TestAnalyze_NoObservationsScoresZero(t *testing.T) {
	snap := domain.TokenSnapshot{Symbol: "XYZ", CurrentPrice: 1}

	report := NewAnalyzer().Analyze("XYZ", nil, snap, nil)

	assert.Empty(t, report.Timeframes)
	assert.Equal(t, 0.0, report.MomentumScore)
	assert.Equal(t, "neutral", report.Status)
	assert.Equal(t, "hold", report.Recommendation)
}

func TestAnalyze_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer()
	snap := fullSnapshot()
	history := []float64{100, 101, 102, 103, 104}

	first := analyzer.Analyze("BTC", nil, snap, history)
	second := analyzer.Analyze("BTC", nil, snap, history)
	assert.Equal(t, first, second)
}

func TestClassifyScore_Boundaries(t *testing.T) {
	tests := []struct {
		score          float64
		status         string
		recommendation string
	}{
		{75, "very_strong", "aggressive_buy"},
		{50, "strong", "buy"},
		{30, "building", "cautious_buy"},
		{0, "neutral", "hold"},
		{-30, "fading", "sell"},
	}

	for _, tt := range tests {
		status, rec := classifyScore(tt.score)
		assert.Equal(t, tt.status, status, "score %v", tt.score)
		assert.Equal(t, tt.recommendation, rec, "score %v", tt.score)
	}
}

func TestVolumeProfile_Tiers(t *testing.T) {
	assert.Equal(t, domain.VolumeUnknown, volumeProfile(1e9, 0))
	assert.Equal(t, domain.VolumeExploding, volumeProfile(6e8, 1e9))
	assert.Equal(t, domain.VolumeIncreasing, volumeProfile(3e8, 1e9))
	assert.Equal(t, domain.VolumeNormal, volumeProfile(1e8, 1e9))
	assert.Equal(t, domain.VolumeDecreasing, volumeProfile(1e7, 1e9))
}

func TestCrossChainFlow(t *testing.T) {
	assert.Equal(t, domain.FlowVeryPositive, crossChainFlow(ptr(6.0), 2e9))
	assert.Equal(t, domain.FlowPositive, crossChainFlow(ptr(6.0), 1e8))
	assert.Equal(t, domain.FlowPositive, crossChainFlow(ptr(3.0), 1e8))
	assert.Equal(t, domain.FlowNeutral, crossChainFlow(ptr(0.0), 1e9))
	assert.Equal(t, domain.FlowNeutral, crossChainFlow(nil, 1e9))
	assert.Equal(t, domain.FlowNegative, crossChainFlow(ptr(-5.0), 1e9))
}

func TestSentiment_Bounded(t *testing.T) {
	assert.Equal(t, 0.5, sentiment(nil, 0, 0))
	assert.Equal(t, 1.0, sentiment(ptr(500.0), 1e9, 1e9))
	assert.Equal(t, 0.0, sentiment(ptr(-500.0), 0, 1e9))

	s := sentiment(ptr(10.0), 5e8, 1e9)
	assert.InDelta(t, 0.5+10.0/200+0.5*0.2, s, 1e-9)
}
