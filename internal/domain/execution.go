package domain

// PayloadKind discriminates transaction payload stubs by signing model.
type PayloadKind string

const (
	PayloadNear PayloadKind = "near_transaction"
	PayloadEVM  PayloadKind = "evm_transaction"
)

// ExecutionStep is one ordered trade in an execution plan. Priority is the
// 1-based position in the caller-specified chain order, not a ranking by
// economic value.
type ExecutionStep struct {
	Chain            string  `json:"chain"`
	Action           string  `json:"action"`
	Amount           string  `json:"amount"`
	WrappedSymbol    string  `json:"wrappedSymbol"`
	EstimatedGasUSD  float64 `json:"estimatedGas"`
	ExpectedSlippage float64 `json:"expectedSlippage"`
	Venue            string  `json:"venue"`
	Priority         int     `json:"priority"`
}

// TransactionPayload is an unsigned, chain-shaped payload stub handed to a
// downstream signing collaborator. The payload body is opaque to this core.
type TransactionPayload struct {
	Chain   string      `json:"chain"`
	Kind    PayloadKind `json:"kind"`
	Payload any         `json:"payload"`
}

// MonitoringPlan is static post-execution guidance attached to every plan.
type MonitoringPlan struct {
	ProfitTargetPercent float64  `json:"profitTargetPercent"`
	StopLossPercent     float64  `json:"stopLossPercent"`
	Alerts              []string `json:"alerts"`
}

// ExecutionPlanReport is the result of execution-plan sequencing.
type ExecutionPlanReport struct {
	Strategy            string               `json:"strategy"`
	Token               string               `json:"token"`
	Trades              []ExecutionStep      `json:"executionPlan"`
	TransactionPayloads []TransactionPayload `json:"transactionPayloads"`
	Monitoring          MonitoringPlan       `json:"monitoring"`
	Instructions        []string             `json:"instructions"`
	Warnings            []string             `json:"warningsAndRisks"`
}
