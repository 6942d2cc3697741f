// Package technical derives secondary indicators for a single token across
// requested timeframes: an RSI-style oscillator, volume profiling, a coarse
// cross-chain flow estimate, and a bounded sentiment score.
package technical

import (
	"math"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/momentum"
)

// Per-timeframe contribution bounds for the aggregate momentum score.
const (
	priceTermScale = 5.0
	priceTermBound = 50.0
	volTermScale   = 10.0 // per $1B of 24h volume
	volTermBound   = 50.0
)

// DefaultTimeframes is the analysis window set used when the caller does not
// specify one.
var DefaultTimeframes = []domain.Timeframe{domain.Timeframe1h, domain.Timeframe4h, domain.Timeframe24h}

// Analyzer computes multi-timeframe analysis reports.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer. It is stateless and safe for concurrent use.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze builds the report for one token. An observation is emitted only for
// timeframes the snapshot carries data for; a window with no data (4h, or a
// nil change field) is omitted rather than zero-filled. An empty timeframe
// list falls back to DefaultTimeframes.
func (a *Analyzer) Analyze(token string, timeframes []domain.Timeframe, snap domain.TokenSnapshot, history []float64) domain.AnalysisReport {
	if len(timeframes) == 0 {
		timeframes = DefaultTimeframes
	}

	observations := make(map[domain.Timeframe]domain.TimeframeObservation, len(timeframes))
	var scoreSum float64
	var scored int
	for _, tf := range timeframes {
		change := snap.Change(tf)
		if change == nil {
			continue
		}
		observations[tf] = domain.TimeframeObservation{
			Timeframe:     tf,
			PercentChange: *change,
			Volume:        snap.Volume24h,
			Trend:         momentum.Classify(change),
		}
		scoreSum += contribution(*change, snap.Volume24h)
		scored++
	}

	score := 0.0
	if scored > 0 {
		score = scoreSum / float64(scored)
	}

	status, recommendation := classifyScore(score)

	return domain.AnalysisReport{
		Token:          token,
		MomentumScore:  score,
		Status:         status,
		Recommendation: recommendation,
		RiskLevel:      riskLevel(score),
		Timeframes:     observations,
		Technicals: domain.TechnicalProfile{
			Oscillator:     Oscillator(history),
			VolumeProfile:  volumeProfile(snap.Volume24h, snap.MarketCap),
			CrossChainFlow: crossChainFlow(snap.Change24h, snap.Volume24h),
			Sentiment:      sentiment(snap.Change24h, snap.Volume24h, snap.MarketCap),
		},
		MarketData: domain.MarketSummary{
			CurrentPrice: snap.CurrentPrice,
			Volume24h:    snap.Volume24h,
			MarketCap:    snap.MarketCap,
			Change24h:    snap.Change24h,
		},
	}
}

// contribution is one timeframe's share of the aggregate score: a bounded
// signed price term plus a bounded volume term.
func contribution(percentChange, volume float64) float64 {
	priceTerm := clamp(percentChange*priceTermScale, -priceTermBound, priceTermBound)
	volTerm := math.Min(volume/1e9*volTermScale, volTermBound)
	return priceTerm + volTerm
}

func classifyScore(score float64) (status, recommendation string) {
	switch {
	case score > 60:
		return "very_strong", "aggressive_buy"
	case score > 40:
		return "strong", "buy"
	case score > 20:
		return "building", "cautious_buy"
	case score < -20:
		return "fading", "sell"
	default:
		return "neutral", "hold"
	}
}

func riskLevel(score float64) string {
	switch {
	case score > 50:
		return "high"
	case score > 30:
		return "medium"
	default:
		return "low"
	}
}

// volumeProfile buckets the volume-to-market-cap ratio into four tiers. A
// zero market cap makes the ratio meaningless, so it reports unknown.
func volumeProfile(volume, marketCap float64) domain.VolumeProfile {
	if marketCap <= 0 {
		return domain.VolumeUnknown
	}
	ratio := volume / marketCap
	switch {
	case ratio > 0.5:
		return domain.VolumeExploding
	case ratio > 0.2:
		return domain.VolumeIncreasing
	case ratio > 0.05:
		return domain.VolumeNormal
	default:
		return domain.VolumeDecreasing
	}
}

// crossChainFlow combines 24h change and absolute volume into a qualitative
// read of where capital is moving.
func crossChainFlow(change24h *float64, volume float64) domain.CrossChainFlow {
	c := 0.0
	if change24h != nil {
		c = *change24h
	}
	switch {
	case c > 5 && volume > 1e9:
		return domain.FlowVeryPositive
	case c > 2:
		return domain.FlowPositive
	case c > -2:
		return domain.FlowNeutral
	default:
		return domain.FlowNegative
	}
}

// sentiment starts from a neutral 0.5, nudged by the 24h change and a capped
// fraction of the volume-to-cap ratio, clamped to [0, 1].
func sentiment(change24h *float64, volume, marketCap float64) float64 {
	s := 0.5
	if change24h != nil {
		s += *change24h / 200
	}
	if marketCap > 0 {
		s += math.Min(volume/marketCap, 0.5) * 0.2
	}
	return clamp(s, 0, 1)
}
