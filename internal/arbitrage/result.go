package arbitrage

import "fmt"

// Gate names the pipeline stage that stopped a rejected evaluation.
type Gate string

const (
	// GateNone means the evaluation passed every stage.
	GateNone Gate = ""
	// GatePriceGap means the pools' price difference was below the floor.
	GatePriceGap Gate = "price_gap"
	// GateTWAP means the buy pool's spot price failed the time-weighted
	// reference check.
	GateTWAP Gate = "twap"
	// GateSize means no profitable trade size was found in range.
	GateSize Gate = "size"
	// GateProfit means the expected profit was below the threshold.
	GateProfit Gate = "profit"
)

// Result is the outcome of one opportunity evaluation. The triple is
// returned even when ShouldExecute is false so callers can inspect a
// computed-but-rejected opportunity.
type Result struct {
	ShouldExecute  bool
	OptimalAmount  float64
	ExpectedProfit float64

	// Direction and PriceDiffPct describe the detected gap, when any.
	Direction    Direction
	PriceDiffPct float64

	// RejectedBy names the gate that stopped a non-executable result.
	RejectedBy Gate
}

// FormatCompact returns a single-line summary for logging.
func (r Result) FormatCompact() string {
	if !r.ShouldExecute {
		return fmt.Sprintf("no-go (%s) | gap %.3f%% | size %.4f | profit %.4f",
			r.RejectedBy, r.PriceDiffPct, r.OptimalAmount, r.ExpectedProfit)
	}
	return fmt.Sprintf("go %s | gap %.3f%% | size %.4f | profit %.4f",
		r.Direction, r.PriceDiffPct, r.OptimalAmount, r.ExpectedProfit)
}
