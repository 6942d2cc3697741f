package domain

// ChainPriceQuote is a synthesized per-chain price for a token. All quotes in
// a set derive from the same canonical base price, so the set always has a
// well-defined min and max.
type ChainPriceQuote struct {
	Chain           string  `json:"chain"`
	WrappedSymbol   string  `json:"wrappedSymbol"`
	Price           float64 `json:"price"`
	SlippagePercent float64 `json:"slippagePercent"`
	Venue           string  `json:"venue"`
}

// ArbitrageOpportunity is the best spread across a quote set. Profitable is
// true only when the spread clears the fixed minimum threshold.
type ArbitrageOpportunity struct {
	SpreadPercent float64 `json:"spreadPercent"`
	BuyChain      string  `json:"buyChain"`
	SellChain     string  `json:"sellChain"`
	Profitable    bool    `json:"profitable"`
}

// PriceReport is the result of cross-chain price synthesis for one token.
type PriceReport struct {
	Token      string                     `json:"token"`
	Chains     map[string]ChainPriceQuote `json:"chains"`
	Arbitrage  ArbitrageOpportunity       `json:"arbitrage"`
	MarketData MarketSummary              `json:"marketData"`
}
