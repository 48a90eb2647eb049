// Package path chains pricing across ordered pool sequences and evaluates
// independent path sets.
package path

import "github.com/nportas/amm-arb-engine/internal/amm"

// MaxSlippagePct is the sentinel returned when a path crosses a pool with
// non-positive reserves: the path's pricing cannot be trusted at all.
const MaxSlippagePct = 100.0

// MultiHopSlippage applies the constant-product output formula hop by hop
// along the pool sequence and returns the sum of each hop's individual
// slippage. An empty path or non-positive starting amount yields 0; a
// degenerate pool anywhere in the path short-circuits to MaxSlippagePct.
func MultiHopSlippage(pools []amm.Pool, amountIn float64) float64 {
	if len(pools) == 0 || amountIn <= 0 {
		return 0
	}

	total := 0.0
	amount := amountIn
	for _, pool := range pools {
		if !pool.Valid() {
			return MaxSlippagePct
		}

		out := amm.ConstantProductOut(pool, amount, amm.SwapFeeRate)
		ideal := amount * pool.ReserveOut / pool.ReserveIn
		if ideal > 0 {
			hopSlippage := (ideal - out) / ideal * 100
			if hopSlippage > 0 {
				total += hopSlippage
			}
		}
		amount = out
	}

	return total
}

// hopOutput runs an amount through every hop of a path and returns the
// final output, or ok=false when the path crosses a degenerate pool.
func hopOutput(pools []amm.Pool, amountIn float64) (out float64, ok bool) {
	amount := amountIn
	for _, pool := range pools {
		if !pool.Valid() {
			return 0, false
		}
		amount = amm.ConstantProductOut(pool, amount, amm.SwapFeeRate)
	}
	return amount, true
}
