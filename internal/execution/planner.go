// Package execution sequences a built strategy into ordered trade steps with
// venue, gas, and slippage estimates, plus unsigned transaction payload stubs
// for a downstream signing collaborator.
package execution

import (
	"fmt"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

const (
	// placeholderAmount fills a missing positional amount instead of erroring.
	placeholderAmount = "1000"

	defaultToken = "BTC"
)

// Monitoring defaults attached to every plan.
const (
	monitorProfitTarget = 15.0
	monitorStopLoss     = 8.0
)

var monitoringAlerts = []string{
	"price moves more than 5% against entry on any chain",
	"cross-chain spread exceeds 2%",
	"bridge transfer pending for more than 30 minutes",
}

var instructions = []string{
	"review every step and payload before signing",
	"execute steps in priority order; do not parallelize bridge-dependent legs",
	"sign and broadcast each payload with your wallet provider",
	"set the monitoring alerts before the first fill",
	"close remaining exposure at the exit plan's time limit",
}

var warnings = []string{
	"payloads are unsigned templates; amounts and routes must be verified",
	"gas estimates are indicative and move with network congestion",
	"execution on thin venues can slip beyond the quoted estimate",
	"this plan is not financial advice",
}

// Planner sequences execution steps from per-chain registry metadata.
type Planner struct {
	registry *chains.Registry
}

// NewPlanner creates a Planner backed by the given registry.
func NewPlanner(registry *chains.Registry) *Planner {
	return &Planner{registry: registry}
}

// Plan emits one buy step per requested chain, in caller order, with 1-based
// priorities. Amounts correspond positionally to chains; a missing amount
// falls back to the placeholder. The strategy reference is required but
// opaque: it is never resolved against stored builder output. Unknown chains
// get generic venue/gas/slippage defaults.
func (p *Planner) Plan(strategyRef, token string, requestedChains, amounts []string) (domain.ExecutionPlanReport, error) {
	if strategyRef == "" {
		return domain.ExecutionPlanReport{}, fmt.Errorf("strategy reference: %w", domain.ErrMissingField)
	}
	if token == "" {
		token = defaultToken
	}
	if len(requestedChains) == 0 {
		requestedChains = []string{"ethereum", "bsc"}
	}

	steps := make([]domain.ExecutionStep, 0, len(requestedChains))
	payloads := make([]domain.TransactionPayload, 0, len(requestedChains))
	for i, chain := range requestedChains {
		amount := placeholderAmount
		if i < len(amounts) && amounts[i] != "" {
			amount = amounts[i]
		}

		info := p.registry.ChainOrDefault(chain)
		wrapped := p.registry.WrappedSymbolOrSelf(token, chain)

		steps = append(steps, domain.ExecutionStep{
			Chain:            chain,
			Action:           "buy",
			Amount:           amount,
			WrappedSymbol:    wrapped,
			EstimatedGasUSD:  info.GasUSD,
			ExpectedSlippage: info.SlippagePercent,
			Venue:            info.Venue,
			Priority:         i + 1,
		})
		payloads = append(payloads, buildPayload(chain, info, wrapped, amount))
	}

	return domain.ExecutionPlanReport{
		Strategy:            strategyRef,
		Token:               token,
		Trades:              steps,
		TransactionPayloads: payloads,
		Monitoring: domain.MonitoringPlan{
			ProfitTargetPercent: monitorProfitTarget,
			StopLossPercent:     monitorStopLoss,
			Alerts:              monitoringAlerts,
		},
		Instructions: instructions,
		Warnings:     warnings,
	}, nil
}
