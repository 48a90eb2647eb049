package pricing

// PriceSample is one observation in a caller-supplied price window.
// Samples are assumed to be ordered by ascending timestamp; the engine
// never re-sorts them.
type PriceSample struct {
	Timestamp float64
	Price     float64
}

// TWAP computes the time-weighted average price over the sample window:
// each sample's price is weighted by the interval to the next sample.
// Fewer than two samples carry no interval information and yield 0.
func TWAP(samples []PriceSample) float64 {
	if len(samples) < 2 {
		return 0
	}

	var weightedSum, totalTime float64
	for i := 0; i < len(samples)-1; i++ {
		dt := samples[i+1].Timestamp - samples[i].Timestamp
		weightedSum += samples[i].Price * dt
		totalTime += dt
	}
	if totalTime <= 0 {
		return 0
	}
	return weightedSum / totalTime
}

// ValidateWithTWAP reports whether a current price is within
// maxDeviationPct percent of the time-weighted reference. It fails closed:
// a non-positive reference rejects the price, guarding against acting on
// a transiently manipulated pool.
func ValidateWithTWAP(currentPrice, twap, maxDeviationPct float64) bool {
	if twap <= 0 {
		return false
	}
	deviation := (currentPrice - twap) / twap * 100
	if deviation < 0 {
		deviation = -deviation
	}
	return deviation <= maxDeviationPct
}
