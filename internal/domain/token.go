// Package domain defines the core entities of the momentum pipeline: market
// snapshots, momentum results, technical profiles, cross-chain quotes,
// allocation strategies, and execution plans. All entities are request-scoped
// values; nothing in this package carries mutable shared state.
package domain

// Timeframe identifies a percentage-change window in the upstream market data.
type Timeframe string

const (
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
)

// ScanTimeframes are the windows the scanner can select on, in the order the
// upstream snapshot reports them. 4h is analysis-only: the snapshot carries no
// 4h change field.
var ScanTimeframes = []Timeframe{Timeframe1h, Timeframe24h, Timeframe7d}

// TokenSnapshot is one token's view of the market at fetch time. Percentage
// changes are pointers because the upstream feed omits them for thin markets;
// a nil change is "unknown", which is distinct from 0.
type TokenSnapshot struct {
	Symbol       string
	Name         string
	CurrentPrice float64
	Volume24h    float64
	MarketCap    float64
	Change1h     *float64
	Change24h    *float64
	Change7d     *float64
}

// Change returns the percentage change for the given timeframe, or nil when
// the snapshot does not carry that window.
func (t TokenSnapshot) Change(tf Timeframe) *float64 {
	switch tf {
	case Timeframe1h:
		return t.Change1h
	case Timeframe24h:
		return t.Change24h
	case Timeframe7d:
		return t.Change7d
	default:
		return nil
	}
}

// Trend is the seven-bucket classification of a signed percentage change.
type Trend string

const (
	TrendVeryBullish   Trend = "very_bullish"
	TrendStrongBullish Trend = "strong_bullish"
	TrendBullish       Trend = "bullish"
	TrendNeutral       Trend = "neutral"
	TrendBearish       Trend = "bearish"
	TrendStrongBearish Trend = "strong_bearish"
	TrendVeryBearish   Trend = "very_bearish"
)

// RawChanges echoes the snapshot's change fields in scan output.
type RawChanges struct {
	Change1h  *float64 `json:"change1h"`
	Change24h *float64 `json:"change24h"`
	Change7d  *float64 `json:"change7d"`
}

// MomentumResult is one scored, ranked entry in a scan result set.
type MomentumResult struct {
	Symbol     string     `json:"symbol"`
	Name       string     `json:"name"`
	Score      float64    `json:"score"`
	Trend      Trend      `json:"trend"`
	RawChanges RawChanges `json:"rawChanges"`
	Chains     []string   `json:"chains"`
}

// ScanReport is the full result of one momentum scan. Tokens are sorted by
// score descending and truncated to the scanner's result cap; Found counts
// matches before truncation.
type ScanReport struct {
	Threshold        float64          `json:"threshold"`
	Timeframe        Timeframe        `json:"timeframe"`
	MomentumDetected bool             `json:"momentumDetected"`
	Found            int              `json:"found"`
	Tokens           []MomentumResult `json:"tokens"`
	Summary          string           `json:"summary"`
}
