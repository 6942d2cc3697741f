package momentum

import (
	"fmt"
	"sort"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

const (
	// DefaultThreshold is the minimum absolute percent move to retain.
	DefaultThreshold = 5.0

	// DefaultTimeframe is the change window the scanner selects on.
	DefaultTimeframe = domain.Timeframe24h

	// maxResults caps the ranked result set.
	maxResults = 10
)

// Scanner ranks a market universe by momentum score.
type Scanner struct {
	registry *chains.Registry
}

// NewScanner creates a Scanner that resolves chain representations through
// the given registry.
func NewScanner(registry *chains.Registry) *Scanner {
	return &Scanner{registry: registry}
}

// Scan filters the universe to tokens whose selected-timeframe change is
// known and at least threshold in magnitude, scores them, and returns the top
// results sorted by score descending. Ties keep input order (the sort is
// stable). Threshold <= 0 and an empty timeframe fall back to the defaults;
// an unknown timeframe is a client error.
func (s *Scanner) Scan(universe []domain.TokenSnapshot, threshold float64, timeframe domain.Timeframe) (domain.ScanReport, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	if !validScanTimeframe(timeframe) {
		return domain.ScanReport{}, fmt.Errorf("scan timeframe %q: %w", timeframe, domain.ErrUnsupportedTimeframe)
	}

	results := make([]domain.MomentumResult, 0, len(universe))
	for _, t := range universe {
		change := t.Change(timeframe)
		if change == nil {
			continue
		}
		if abs(*change) < threshold {
			continue
		}
		results = append(results, domain.MomentumResult{
			Symbol: t.Symbol,
			Name:   t.Name,
			Score:  Score(t),
			Trend:  Classify(change),
			RawChanges: domain.RawChanges{
				Change1h:  t.Change1h,
				Change24h: t.Change24h,
				Change7d:  t.Change7d,
			},
			Chains: s.registry.TokenChains(t.Symbol),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	found := len(results)
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return domain.ScanReport{
		Threshold:        threshold,
		Timeframe:        timeframe,
		MomentumDetected: found > 0,
		Found:            found,
		Tokens:           results,
		Summary: fmt.Sprintf("%d tokens moving at least %.1f%% over %s",
			found, threshold, timeframe),
	}, nil
}

func validScanTimeframe(tf domain.Timeframe) bool {
	for _, v := range domain.ScanTimeframes {
		if tf == v {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
