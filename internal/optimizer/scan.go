package optimizer

import "github.com/nportas/amm-arb-engine/internal/amm"

// scanPoints is the grid resolution of the cross-pool size scan.
const scanPoints = 100

// CrossPoolProfit returns the net profit of a buy-then-sell arbitrage of
// the given size: buy on one pool, sell the proceeds on the other, repay
// the flashloan with its proportional fee, pay gas. Both legs use the
// fee-adjusted constant-product output.
func CrossPoolProfit(buyLeg, sellLeg amm.Pool, size, flashloanFee, gasCost float64) float64 {
	bought := amm.ConstantProductOut(buyLeg, size, amm.SwapFeeRate)
	sold := amm.ConstantProductOut(sellLeg, bought, amm.SwapFeeRate)
	return sold - size*(1+flashloanFee) - gasCost
}

// CrossPoolOptimalSize finds the trade size maximizing CrossPoolProfit by
// evaluating 100 evenly spaced sizes up to 30% of the smaller of the two
// legs' input reserves. The profit function across buy+sell legs is not
// guaranteed unimodal, so a discretized scan is used instead of bisection;
// it trades precision for robustness against local optima.
//
// Returns the best size and its profit, or (0, 0) when no scanned size is
// profitable.
func CrossPoolOptimalSize(buyLeg, sellLeg amm.Pool, flashloanFee, gasCost float64) (size, profit float64) {
	if !buyLeg.Valid() || !sellLeg.Valid() {
		return 0, 0
	}

	limit := buyLeg.ReserveIn
	if sellLeg.ReserveIn < limit {
		limit = sellLeg.ReserveIn
	}
	upperBound := limit * flashloanBoundFraction

	bestSize := 0.0
	bestProfit := 0.0
	for k := 1; k <= scanPoints; k++ {
		candidate := upperBound * float64(k) / scanPoints
		p := CrossPoolProfit(buyLeg, sellLeg, candidate, flashloanFee, gasCost)
		if p > bestProfit {
			bestProfit = p
			bestSize = candidate
		}
	}

	return bestSize, bestProfit
}
