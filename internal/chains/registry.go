// Package chains holds the closed lookup tables that encode per-token and
// per-chain behavior: wrapped-symbol mappings, chain price factors, venue and
// gas metadata, and the fallback policy for combinations outside the tables.
// The tables are fixed at construction and shared read-only, so every
// unsupported (token, chain) combination is a validation-time concern.
package chains

import "sort"

// ChainInfo is the per-chain execution metadata used by pricing and planning.
type ChainInfo struct {
	// PriceFactor models the typical fee/liquidity premium or discount of the
	// chain relative to the canonical price. Mainnet is the 1.0 reference.
	PriceFactor float64

	// Venue is the DEX the planner routes through on this chain.
	Venue string

	// RouterAddress is the venue's router contract (EVM chains only).
	RouterAddress string

	// GasUSD is a coarse per-swap gas estimate in USD.
	GasUSD float64

	// SlippagePercent is the expected execution slippage on this chain.
	SlippagePercent float64
}

// genericChain is the fallback for chains outside the table. The planner
// accepts unknown chains; pricing does not.
var genericChain = ChainInfo{
	PriceFactor:     1.0,
	Venue:           "generic-dex",
	GasUSD:          1.0,
	SlippagePercent: 0.5,
}

// fallbackChains is the chain list reported for scanned symbols that have no
// wrapped-symbol mapping.
var fallbackChains = []string{"ethereum", "bsc"}

// Registry answers token/chain lookups from its immutable tables.
type Registry struct {
	chains  map[string]ChainInfo
	wrapped map[string]map[string]string // token -> chain -> wrapped symbol
	coinIDs map[string]string            // token -> upstream API id
}

// NewRegistry builds the default registry. The token set is deliberately a
// small closed enumeration; adding a token means adding its wrapped mappings
// here and its allocation template in the strategy package.
func NewRegistry() *Registry {
	return &Registry{
		chains: map[string]ChainInfo{
			"ethereum":  {PriceFactor: 1.0, Venue: "uniswap-v3", RouterAddress: "0xE592427A0AEce92De3Edee1F18E0157C05861564", GasUSD: 15.0, SlippagePercent: 0.30},
			"bsc":       {PriceFactor: 0.9985, Venue: "pancakeswap", RouterAddress: "0x10ED43C718714eb63d5aA57B78B54704E256024E", GasUSD: 0.30, SlippagePercent: 0.40},
			"polygon":   {PriceFactor: 0.9975, Venue: "quickswap", RouterAddress: "0xa5E0829CaCEd8fFDD4De3c43696c57F7D7A678ff", GasUSD: 0.02, SlippagePercent: 0.50},
			"arbitrum":  {PriceFactor: 0.9995, Venue: "camelot", RouterAddress: "0xc873fEcbd354f5A56E00E710B90EF4201db2448d", GasUSD: 0.25, SlippagePercent: 0.35},
			"optimism":  {PriceFactor: 0.9990, Venue: "velodrome", RouterAddress: "0xa062aE8A9c5e11aaA026fc2670B0D65cCc8B2858", GasUSD: 0.15, SlippagePercent: 0.35},
			"avalanche": {PriceFactor: 0.9965, Venue: "traderjoe", RouterAddress: "0x60aE616a2155Ee3d9A68541Ba4544862310933d4", GasUSD: 0.40, SlippagePercent: 0.50},
			"solana":    {PriceFactor: 0.9955, Venue: "jupiter", GasUSD: 0.001, SlippagePercent: 0.60},
			"near":      {PriceFactor: 0.9950, Venue: "ref-finance", GasUSD: 0.01, SlippagePercent: 0.80},
		},
		wrapped: map[string]map[string]string{
			"BTC": {
				"ethereum":  "WBTC",
				"bsc":       "BTCB",
				"polygon":   "WBTC",
				"arbitrum":  "WBTC",
				"optimism":  "WBTC",
				"avalanche": "BTC.b",
				"near":      "nBTC",
			},
			"ETH": {
				"ethereum": "ETH",
				"bsc":      "ETH",
				"polygon":  "WETH",
				"arbitrum": "WETH",
				"optimism": "ETH",
				"near":     "nETH",
			},
			"SOL": {
				"solana":   "SOL",
				"ethereum": "SOL",
			},
		},
		coinIDs: map[string]string{
			"BTC": "bitcoin",
			"ETH": "ethereum",
			"SOL": "solana",
		},
	}
}

// SupportedToken reports whether the token is in the closed supported set.
func (r *Registry) SupportedToken(token string) bool {
	_, ok := r.wrapped[token]
	return ok
}

// CoinID returns the upstream market-data API identifier for a token.
func (r *Registry) CoinID(token string) (string, bool) {
	id, ok := r.coinIDs[token]
	return id, ok
}

// Chain returns metadata for a chain and whether it was found in the table.
func (r *Registry) Chain(chain string) (ChainInfo, bool) {
	info, ok := r.chains[chain]
	return info, ok
}

// ChainOrDefault returns metadata for a chain, falling back to the generic
// defaults for chains outside the table.
func (r *Registry) ChainOrDefault(chain string) ChainInfo {
	if info, ok := r.chains[chain]; ok {
		return info
	}
	return genericChain
}

// WrappedSymbol returns the chain-specific representative symbol for a token,
// and whether the (token, chain) combination is supported.
func (r *Registry) WrappedSymbol(token, chain string) (string, bool) {
	m, ok := r.wrapped[token]
	if !ok {
		return "", false
	}
	sym, ok := m[chain]
	return sym, ok
}

// WrappedSymbolOrSelf is the planner's lenient lookup: unknown combinations
// fall back to the token's own symbol.
func (r *Registry) WrappedSymbolOrSelf(token, chain string) string {
	if sym, ok := r.WrappedSymbol(token, chain); ok {
		return sym
	}
	return token
}

// TokenChains returns the chains a token is mapped on, sorted for stable
// output. Unknown tokens get the two-chain fallback list.
func (r *Registry) TokenChains(token string) []string {
	m, ok := r.wrapped[token]
	if !ok {
		out := make([]string, len(fallbackChains))
		copy(out, fallbackChains)
		return out
	}
	out := make([]string, 0, len(m))
	for chain := range m {
		out = append(out, chain)
	}
	sort.Strings(out)
	return out
}
