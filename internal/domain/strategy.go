package domain

// RiskLevel selects the fraction of budget a strategy may expose.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ChainAllocation is one chain's share of a capital allocation plan. The
// percentage comes from the unfiltered per-token template; filtering a plan to
// a subset of chains does not renormalize percentages, so a filtered plan's
// percentages may sum below 100.
type ChainAllocation struct {
	Percentage    float64 `json:"percentage"`
	Amount        float64 `json:"amount"`
	WrappedSymbol string  `json:"wrappedSymbol"`
	Rationale     string  `json:"rationale"`
}

// PartialExit is one staged profit-taking step: sell Percent of the position
// once profit reaches AtProfitPercent.
type PartialExit struct {
	Percent         float64 `json:"percent"`
	AtProfitPercent float64 `json:"atProfitPercent"`
}

// ExitPlan is a token's fixed exit template, independent of budget.
type ExitPlan struct {
	ProfitTargetPercent float64       `json:"profitTargetPercent"`
	StopLossPercent     float64       `json:"stopLossPercent"`
	TimeLimit           string        `json:"timeLimit"`
	PartialExits        []PartialExit `json:"partialExitSchedule"`
}

// StrategyDetail is the allocation-and-exit core of a built strategy.
type StrategyDetail struct {
	Primary        string                     `json:"primary"`
	Allocation     map[string]ChainAllocation `json:"allocation"`
	ExecutionOrder []string                   `json:"executionOrder"`
	ExitStrategy   ExitPlan                   `json:"exitStrategy"`
}

// StrategyReport is the result of risk-adjusted strategy construction. The
// StrategyID is an opaque reference the caller passes on to execution
// planning; the planner does not verify it against anything the builder
// produced.
type StrategyReport struct {
	StrategyID       string             `json:"strategyId"`
	Token            string             `json:"token"`
	Budget           float64            `json:"budget"`
	RiskLevel        RiskLevel          `json:"riskLevel"`
	MaxPosition      float64            `json:"maxPosition"`
	Strategy         StrategyDetail     `json:"strategy"`
	EstimatedReturns map[string]float64 `json:"estimatedReturns"`
	Risks            []string           `json:"risks"`
}
