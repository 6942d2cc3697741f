package technical

// rsiPeriod is the classic Wilder lookback.
const rsiPeriod = 14

// neutralOscillator is returned when the history is too short to compute RSI.
const neutralOscillator = 50.0

// Oscillator computes an RSI-style oscillator over the most recent rsiPeriod
// deltas of the price history (oldest first). Fewer than rsiPeriod deltas
// yields the neutral midpoint; zero average loss yields the maximum. The
// result is clamped to [0, 100].
func Oscillator(history []float64) float64 {
	if len(history) < rsiPeriod+1 {
		return neutralOscillator
	}

	recent := history[len(history)-(rsiPeriod+1):]
	var gains, losses float64
	for i := 1; i < len(recent); i++ {
		delta := recent[i] - recent[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	avgGain := gains / rsiPeriod
	avgLoss := losses / rsiPeriod
	if avgLoss == 0 {
		return 100
	}

	rsi := 100 - 100/(1+avgGain/avgLoss)
	return clamp(rsi, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
