package domain

// TimeframeObservation is the per-window slice of a token's analysis. An
// observation exists only when the source snapshot carries data for that
// window; missing windows are omitted from the report, never zero-filled.
type TimeframeObservation struct {
	Timeframe     Timeframe `json:"timeframe"`
	PercentChange float64   `json:"percentChange"`
	Volume        float64   `json:"volume"`
	Trend         Trend     `json:"trend"`
}

// VolumeProfile buckets the volume-to-market-cap ratio.
type VolumeProfile string

const (
	VolumeExploding  VolumeProfile = "exploding"
	VolumeIncreasing VolumeProfile = "increasing"
	VolumeNormal     VolumeProfile = "normal"
	VolumeDecreasing VolumeProfile = "decreasing"
	VolumeUnknown    VolumeProfile = "unknown"
)

// CrossChainFlow is a coarse qualitative read of cross-chain capital flow
// derived from 24h change and absolute volume.
type CrossChainFlow string

const (
	FlowVeryPositive CrossChainFlow = "very_positive"
	FlowPositive     CrossChainFlow = "positive"
	FlowNeutral      CrossChainFlow = "neutral"
	FlowNegative     CrossChainFlow = "negative"
)

// TechnicalProfile carries the secondary indicators for one token.
type TechnicalProfile struct {
	Oscillator     float64        `json:"oscillator"`     // RSI-style, 0-100
	VolumeProfile  VolumeProfile  `json:"volumeProfile"`
	CrossChainFlow CrossChainFlow `json:"crossChainFlow"`
	Sentiment      float64        `json:"sentiment"` // 0.0-1.0
}

// MarketSummary echoes the canonical market data an analysis was computed
// from, so callers can sanity-check results against the source snapshot.
type MarketSummary struct {
	CurrentPrice float64  `json:"currentPrice"`
	Volume24h    float64  `json:"volume24h"`
	MarketCap    float64  `json:"marketCap"`
	Change24h    *float64 `json:"change24h"`
}

// AnalysisReport is the result of multi-timeframe momentum analysis for a
// single token.
type AnalysisReport struct {
	Token          string                              `json:"token"`
	MomentumScore  float64                             `json:"momentumScore"`
	Status         string                              `json:"status"`
	Recommendation string                              `json:"recommendation"`
	RiskLevel      string                              `json:"riskLevel"`
	Timeframes     map[Timeframe]TimeframeObservation  `json:"timeframes"`
	Technicals     TechnicalProfile                    `json:"technicals"`
	MarketData     MarketSummary                       `json:"marketData"`
}
