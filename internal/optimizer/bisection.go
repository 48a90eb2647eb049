// Package optimizer finds profit-maximizing trade and flashloan sizes
// with bounded numerical searches. Closed-form sizing is infeasible once
// swap fees and nonlinear curves are combined, so every search here is a
// plain iteration-capped loop over explicit low/high/best state.
package optimizer

import "github.com/nportas/amm-arb-engine/internal/amm"

// Trade sizing search bounds. The reserve fractions are risk-limiting
// heuristics, not protocol constraints.
const (
	tradeSizeIterations    = 50
	tradeSizeEpsilon       = 1e-4
	tradeSizeBoundFraction = 0.10

	flashloanIterations    = 100
	flashloanEpsilon       = 1e-2
	flashloanBoundFraction = 0.30
)

// OptimalTradeSize searches for the largest trade against a
// constant-product pool whose net profit (output minus size minus gas)
// clears minProfit. It bisects over [0, 10% of reserveIn] for at most 50
// iterations, tightening toward the profitable side, and returns 0 when
// no size in range clears the floor.
func OptimalTradeSize(pool amm.Pool, gasCost, minProfit float64) float64 {
	if !pool.Valid() {
		return 0
	}

	low := 0.0
	high := pool.ReserveIn * tradeSizeBoundFraction
	bestSize := 0.0

	for i := 0; i < tradeSizeIterations; i++ {
		mid := (low + high) / 2

		out := amm.ConstantProductOut(pool, mid, amm.SwapFeeRate)
		profit := out - mid - gasCost

		if profit >= minProfit {
			bestSize = mid
			low = mid
		} else {
			high = mid
		}

		if high-low < tradeSizeEpsilon {
			break
		}
	}

	return bestSize
}

// OptimalFlashloanSize searches for the flashloan amount that maximizes
// net profit against a constant-product pool, where the loan is repaid
// with a proportional fee: profit = out - size*(1+fee) - gas. It bisects
// over [0, 30% of reserveIn] for at most 100 iterations and returns the
// best positive-profit size found, or 0.
func OptimalFlashloanSize(pool amm.Pool, flashloanFee, gasCost float64) float64 {
	if !pool.Valid() {
		return 0
	}
	return flashloanSearch(pool.ReserveIn*flashloanBoundFraction, func(size float64) float64 {
		out := amm.ConstantProductOut(pool, size, amm.SwapFeeRate)
		return out - size*(1+flashloanFee) - gasCost
	})
}

// OptimalConcentratedFlashloanSize is the concentrated-liquidity variant
// of OptimalFlashloanSize, bounded by 30% of the pool's active liquidity.
func OptimalConcentratedFlashloanSize(pool amm.ConcentratedPool, flashloanFee, gasCost float64) float64 {
	if !pool.Valid() {
		return 0
	}
	return flashloanSearch(pool.Liquidity*flashloanBoundFraction, func(size float64) float64 {
		out := amm.ConcentratedOut(pool, size)
		return out - size*(1+flashloanFee) - gasCost
	})
}

// flashloanSearch bisects profitFn over (0, upperBound], recording the
// best size seen and tightening toward the side where profit is positive.
func flashloanSearch(upperBound float64, profitFn func(size float64) float64) float64 {
	if upperBound <= 0 {
		return 0
	}

	low := 0.0
	high := upperBound
	bestSize := 0.0
	bestProfit := 0.0

	for i := 0; i < flashloanIterations; i++ {
		mid := (low + high) / 2
		profit := profitFn(mid)

		if profit > bestProfit {
			bestProfit = profit
			bestSize = mid
		}

		if profit > 0 {
			low = mid
		} else {
			high = mid
		}

		if high-low < flashloanEpsilon {
			break
		}
	}

	if bestProfit <= 0 {
		return 0
	}
	return bestSize
}
