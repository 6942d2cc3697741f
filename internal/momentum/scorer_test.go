package momentum

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestScore_MissingChangesContributeZero(t *testing.T) {
	snap := domain.TokenSnapshot{Symbol: "XYZ"}
	assert.Equal(t, 0.0, Score(snap))
}

func TestScore_WeightsAndCaps(t *testing.T) {
	snap := domain.TokenSnapshot{
		Symbol:    "BTC",
		Change1h:  ptr(2.0),
		Change24h: ptr(10.0),
		Volume24h: 2e9,
		MarketCap: 3e9,
	}

	// 3*|2| + 2*|10| + min(2*5, 20) + min(3*2, 10) = 6 + 20 + 10 + 6
	assert.InDelta(t, 42.0, Score(snap), 1e-9)
}

func TestScore_VolumeAndMcapTermsCapped(t *testing.T) {
	snap := domain.TokenSnapshot{
		Symbol:    "BTC",
		Volume24h: 100e9,
		MarketCap: 100e9,
	}
	assert.InDelta(t, 30.0, Score(snap), 1e-9)
}

func TestScore_NegativeChangesScoreAsMagnitude(t *testing.T) {
	up := domain.TokenSnapshot{Change24h: ptr(12.0)}
	down := domain.TokenSnapshot{Change24h: ptr(-12.0)}
	assert.Equal(t, Score(up), Score(down))
}

func TestScore_MonotonicInChange(t *testing.T) {
	small := domain.TokenSnapshot{Change24h: ptr(3.0)}
	large := domain.TokenSnapshot{Change24h: ptr(9.0)}
	assert.Greater(t, Score(large), Score(small))
}

func TestClassify_Buckets(t *testing.T) {
	tests := []struct {
		name   string
		change *float64
		want   domain.Trend
	}{
		{"nil is neutral", nil, domain.TrendNeutral},
		{"very bullish", ptr(20.0), domain.TrendVeryBullish},
		{"strong bullish", ptr(10.0), domain.TrendStrongBullish},
		{"bullish", ptr(5.0), domain.TrendBullish},
		{"upper neutral", ptr(3.0), domain.TrendNeutral},
		{"zero", ptr(0.0), domain.TrendNeutral},
		{"lower neutral", ptr(-3.0), domain.TrendBearish},
		{"bearish", ptr(-5.0), domain.TrendBearish},
		{"strong bearish", ptr(-10.0), domain.TrendStrongBearish},
		{"very bearish", ptr(-20.0), domain.TrendVeryBearish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.change))
		})
	}
}
