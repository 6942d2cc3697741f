package strategy

import "github.com/alanyoungcy/momentumbot/internal/domain"

// allocationEntry is one chain's slice of a token template. Percentages of
// the full template sum to 100.
type allocationEntry struct {
	Chain      string
	Percentage float64
	Rationale  string
}

// tokenTemplate is the fixed allocation and exit plan for one supported
// token. Templates are a closed set; tokens outside it cannot be built into a
// strategy.
type tokenTemplate struct {
	Allocation []allocationEntry
	Exit       domain.ExitPlan
}

var templates = map[string]tokenTemplate{
	"BTC": {
		Allocation: []allocationEntry{
			{Chain: "ethereum", Percentage: 40, Rationale: "deepest WBTC liquidity and tightest spreads"},
			{Chain: "bsc", Percentage: 25, Rationale: "BTCB volume with low execution cost"},
			{Chain: "polygon", Percentage: 20, Rationale: "cheap entries for staged fills"},
			{Chain: "arbitrum", Percentage: 15, Rationale: "L2 exposure with mainnet-grade liquidity"},
		},
		Exit: domain.ExitPlan{
			ProfitTargetPercent: 15,
			StopLossPercent:     8,
			TimeLimit:           "72h",
			PartialExits: []domain.PartialExit{
				{Percent: 25, AtProfitPercent: 5},
				{Percent: 50, AtProfitPercent: 10},
				{Percent: 100, AtProfitPercent: 15},
			},
		},
	},
	"ETH": {
		Allocation: []allocationEntry{
			{Chain: "ethereum", Percentage: 45, Rationale: "native asset, no bridge risk"},
			{Chain: "arbitrum", Percentage: 25, Rationale: "largest L2 by ETH volume"},
			{Chain: "optimism", Percentage: 15, Rationale: "secondary L2 diversification"},
			{Chain: "polygon", Percentage: 15, Rationale: "low-fee partial fills"},
		},
		Exit: domain.ExitPlan{
			ProfitTargetPercent: 12,
			StopLossPercent:     7,
			TimeLimit:           "48h",
			PartialExits: []domain.PartialExit{
				{Percent: 30, AtProfitPercent: 4},
				{Percent: 60, AtProfitPercent: 8},
				{Percent: 100, AtProfitPercent: 12},
			},
		},
	},
	"SOL": {
		Allocation: []allocationEntry{
			{Chain: "solana", Percentage: 60, Rationale: "native venue, deepest SOL books"},
			{Chain: "ethereum", Percentage: 40, Rationale: "wrapped SOL for cross-chain exits"},
		},
		Exit: domain.ExitPlan{
			ProfitTargetPercent: 20,
			StopLossPercent:     10,
			TimeLimit:           "96h",
			PartialExits: []domain.PartialExit{
				{Percent: 25, AtProfitPercent: 7},
				{Percent: 50, AtProfitPercent: 14},
				{Percent: 100, AtProfitPercent: 20},
			},
		},
	},
}

// riskMultipliers maps risk level to the fraction of budget exposed.
var riskMultipliers = map[domain.RiskLevel]float64{
	domain.RiskLow:    0.30,
	domain.RiskMedium: 0.60,
	domain.RiskHigh:   0.90,
}

// standardRisks is attached to every built strategy.
var standardRisks = []string{
	"bridge transfers add latency and counterparty risk between chains",
	"slippage on thin chains can exceed the planning estimate",
	"momentum can reverse before the position is fully established",
	"gas spikes on mainnet reduce effective allocation",
}
