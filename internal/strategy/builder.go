// Package strategy constructs risk-adjusted, cross-chain capital allocation
// strategies from fixed per-token templates.
package strategy

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// DefaultBudget is used when the caller passes a non-positive budget.
const DefaultBudget = 2000.0

// Builder produces allocation strategies for the closed supported-token set.
type Builder struct {
	registry *chains.Registry
}

// NewBuilder creates a Builder that resolves wrapped symbols through the
// given registry.
func NewBuilder(registry *chains.Registry) *Builder {
	return &Builder{registry: registry}
}

// Build constructs the strategy for one token. The template is filtered to
// the intersection with the requested chains; filtered percentages are NOT
// renormalized to 100, matching the template semantics (a narrower chain set
// simply deploys less of the max position). An empty chain list keeps the
// full template. Unknown tokens are a client error.
func (b *Builder) Build(token string, budget float64, risk domain.RiskLevel, requestedChains []string) (domain.StrategyReport, error) {
	tmpl, ok := templates[token]
	if !ok {
		return domain.StrategyReport{}, fmt.Errorf("no allocation template for %q: %w", token, domain.ErrUnsupportedToken)
	}

	if budget <= 0 {
		budget = DefaultBudget
	}
	if risk == "" {
		risk = domain.RiskMedium
	}
	mult, ok := riskMultipliers[risk]
	if !ok {
		return domain.StrategyReport{}, fmt.Errorf("risk level %q: %w", risk, domain.ErrInvalidInput)
	}
	maxPosition := budget * mult

	entries := filterEntries(tmpl.Allocation, requestedChains)
	if len(entries) == 0 {
		return domain.StrategyReport{}, fmt.Errorf("token %s on chains %v: %w", token, requestedChains, domain.ErrNoChainSupport)
	}

	// Execution order: largest template share first.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})

	allocation := make(map[string]domain.ChainAllocation, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		allocation[e.Chain] = domain.ChainAllocation{
			Percentage:    e.Percentage,
			Amount:        maxPosition * e.Percentage / 100,
			WrappedSymbol: b.registry.WrappedSymbolOrSelf(token, e.Chain),
			Rationale:     e.Rationale,
		}
		order = append(order, e.Chain)
	}

	return domain.StrategyReport{
		StrategyID:  uuid.NewString(),
		Token:       token,
		Budget:      budget,
		RiskLevel:   risk,
		MaxPosition: maxPosition,
		Strategy: domain.StrategyDetail{
			Primary:        order[0],
			Allocation:     allocation,
			ExecutionOrder: order,
			ExitStrategy:   tmpl.Exit,
		},
		EstimatedReturns: map[string]float64{
			"atProfitTarget": maxPosition * tmpl.Exit.ProfitTargetPercent / 100,
			"atStopLoss":     -maxPosition * tmpl.Exit.StopLossPercent / 100,
		},
		Risks: standardRisks,
	}, nil
}

// filterEntries keeps template entries whose chain is in the requested set,
// preserving template order. An empty request keeps everything.
func filterEntries(entries []allocationEntry, requested []string) []allocationEntry {
	if len(requested) == 0 {
		out := make([]allocationEntry, len(entries))
		copy(out, entries)
		return out
	}
	want := make(map[string]bool, len(requested))
	for _, c := range requested {
		want[c] = true
	}
	var out []allocationEntry
	for _, e := range entries {
		if want[e.Chain] {
			out = append(out, e)
		}
	}
	return out
}
