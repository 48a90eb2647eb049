// Package pricing provides slippage estimation, market impact, and
// time-weighted price utilities for arbitrage evaluation.
package pricing

import "github.com/nportas/amm-arb-engine/internal/amm"

// slippagePct converts an ideal (no-impact) output and the actual curve
// output into a percentage. Favorable deviations are reported as zero,
// never negative.
func slippagePct(idealOut, actualOut float64) float64 {
	if idealOut <= 0 {
		return 0
	}
	slippage := (idealOut - actualOut) / idealOut * 100
	if slippage < 0 {
		return 0
	}
	return slippage
}

// ConstantProductSlippage returns the percentage price impact of selling
// amountIn into a constant-product pool at the standard swap fee. The
// ideal output is the proportional fill in*reserveOut/reserveIn.
func ConstantProductSlippage(pool amm.Pool, amountIn float64) float64 {
	if amountIn <= 0 || !pool.Valid() {
		return 0
	}
	actual := amm.ConstantProductOut(pool, amountIn, amm.SwapFeeRate)
	ideal := amountIn * pool.ReserveOut / pool.ReserveIn
	return slippagePct(ideal, actual)
}

// ConcentratedSlippage returns the percentage price impact against the
// simplified concentrated-liquidity curve. The ideal output is the
// fee-free fill at the current sqrt price.
func ConcentratedSlippage(pool amm.ConcentratedPool, amountIn float64) float64 {
	if amountIn <= 0 || !pool.Valid() {
		return 0
	}
	actual := amm.ConcentratedOut(pool, amountIn)
	ideal := amountIn * pool.SqrtPrice
	return slippagePct(ideal, actual)
}

// StableswapSlippage returns the percentage price impact against the
// amplified stableswap blend. Higher amplification yields lower slippage
// for balanced pools.
func StableswapSlippage(pool amm.Pool, amountIn, amplification float64) float64 {
	if amountIn <= 0 || !pool.Valid() {
		return 0
	}
	actual := amm.StableswapOut(pool, amountIn, amplification)
	ideal := amountIn * pool.ReserveOut / pool.ReserveIn
	return slippagePct(ideal, actual)
}

// WeightedSlippage returns the percentage price impact against a weighted
// pool with the given normalized weights.
func WeightedSlippage(pool amm.Pool, weightIn, weightOut, amountIn float64) float64 {
	if amountIn <= 0 || !pool.Valid() || weightIn <= 0 || weightOut <= 0 {
		return 0
	}
	actual := amm.WeightedOut(pool, weightIn, weightOut, amountIn)
	ideal := amountIn * pool.ReserveOut / pool.ReserveIn
	return slippagePct(ideal, actual)
}

// BestRouteSlippage reduces a set of candidate route slippages to the
// minimum, i.e. the best route an aggregator would pick. An empty set
// yields 0.
func BestRouteSlippage(slippages []float64) float64 {
	if len(slippages) == 0 {
		return 0
	}
	best := slippages[0]
	for _, s := range slippages[1:] {
		if s < best {
			best = s
		}
	}
	return best
}

// MarketImpact returns the absolute percentage move of the pool's spot
// price caused by executing a trade of amountIn, after fees. A degenerate
// pool or non-positive trade yields 0.
func MarketImpact(pool amm.Pool, amountIn float64) float64 {
	if amountIn <= 0 || !pool.Valid() {
		return 0
	}
	spotBefore := pool.SpotPrice()
	out := amm.ConstantProductOut(pool, amountIn, amm.SwapFeeRate)
	after := amm.Pool{
		ReserveIn:  pool.ReserveIn + amountIn,
		ReserveOut: pool.ReserveOut - out,
	}
	spotAfter := after.SpotPrice()

	impact := (spotBefore - spotAfter) / spotBefore * 100
	if impact < 0 {
		impact = -impact
	}
	return impact
}
