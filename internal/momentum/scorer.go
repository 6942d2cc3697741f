// Package momentum implements momentum scoring and universe scanning: the
// detection stage of the pipeline.
package momentum

import (
	"math"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// Scoring weights. The 1h change is weighted above the 24h change so the
// score favors the freshest move; the volume and market-cap terms are capped
// so mega-cap assets cannot dominate on size alone.
const (
	weight24h = 2.0
	weight1h  = 3.0

	volumeScale = 5.0  // per $1B of 24h volume
	volumeCap   = 20.0
	mcapScale   = 2.0  // per $1B of market cap
	mcapCap     = 10.0
)

// Score computes the non-negative momentum score for one token. Absent change
// fields contribute zero; Score never fails.
func Score(t domain.TokenSnapshot) float64 {
	score := 0.0
	if t.Change24h != nil {
		score += weight24h * math.Abs(*t.Change24h)
	}
	if t.Change1h != nil {
		score += weight1h * math.Abs(*t.Change1h)
	}
	score += math.Min(t.Volume24h/1e9*volumeScale, volumeCap)
	score += math.Min(t.MarketCap/1e9*mcapScale, mcapCap)
	return score
}

// Classify maps a signed percent change onto the seven-bucket trend ladder.
// A nil change is neutral.
func Classify(change *float64) domain.Trend {
	if change == nil {
		return domain.TrendNeutral
	}
	c := *change
	switch {
	case c > 15:
		return domain.TrendVeryBullish
	case c > 8:
		return domain.TrendStrongBullish
	case c > 3:
		return domain.TrendBullish
	case c > -3:
		return domain.TrendNeutral
	case c > -8:
		return domain.TrendBearish
	case c > -15:
		return domain.TrendStrongBearish
	default:
		return domain.TrendVeryBearish
	}
}
