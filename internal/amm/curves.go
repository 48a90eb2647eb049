package amm

import "math"

// Fee rates applied to the input amount before it enters the invariant.
const (
	// SwapFeeRate is the standard 0.3% fee used for constant-product quoting.
	SwapFeeRate = 0.003

	// StableswapFeeRate is the 0.04% fee used by stableswap pools.
	StableswapFeeRate = 0.0004
)

// ConstantProductOut returns the output amount for a swap against a
// constant-product pool (x*y=k). The fee is taken from the input:
//
//	out = in*(1-fee) * reserveOut / (reserveIn + in*(1-fee))
//
// A zero input or a degenerate pool yields 0.
func ConstantProductOut(pool Pool, amountIn, feeRate float64) float64 {
	if amountIn <= 0 || !pool.Valid() {
		return 0
	}
	amountInWithFee := amountIn * (1 - feeRate)
	return amountInWithFee * pool.ReserveOut / (pool.ReserveIn + amountInWithFee)
}

// ConcentratedOut returns the output amount for a swap against a
// concentrated-liquidity pool using the simplified continuous model
//
//	out = in * sqrtPrice * L / (L + in)
//
// Callers must not expect tick-accurate parity with on-chain V3 pools.
func ConcentratedOut(pool ConcentratedPool, amountIn float64) float64 {
	if amountIn <= 0 || !pool.Valid() {
		return 0
	}
	return amountIn * pool.SqrtPrice * pool.Liquidity / (pool.Liquidity + amountIn)
}

// StableswapOut returns the output amount for a swap against a stableswap
// pool, modeled as a linear blend of constant-sum and constant-product
// outputs weighted by amp/(amp+100). Higher amplification pulls the curve
// toward constant-sum, which is what keeps slippage low for balanced pools.
func StableswapOut(pool Pool, amountIn, amplification float64) float64 {
	if amountIn <= 0 || !pool.Valid() {
		return 0
	}
	amountInWithFee := amountIn * (1 - StableswapFeeRate)

	totalLiquidity := pool.ReserveIn + pool.ReserveOut
	constantSumOut := totalLiquidity * amountInWithFee / (pool.ReserveIn + pool.ReserveOut)
	constantProductOut := amountInWithFee * pool.ReserveOut / (pool.ReserveIn + amountInWithFee)

	ampWeight := amplification / (amplification + 100)
	return constantSumOut*ampWeight + constantProductOut*(1-ampWeight)
}

// WeightedOut returns the output amount for a swap against a weighted pool:
//
//	out = balanceOut * (1 - (balanceIn/(balanceIn+in))^(weightIn/weightOut))
//
// Non-positive weights are treated like degenerate reserves and yield 0.
func WeightedOut(pool Pool, weightIn, weightOut, amountIn float64) float64 {
	if amountIn <= 0 || !pool.Valid() || weightIn <= 0 || weightOut <= 0 {
		return 0
	}
	base := pool.ReserveIn / (pool.ReserveIn + amountIn)
	exponent := weightIn / weightOut
	return pool.ReserveOut * (1 - math.Pow(base, exponent))
}
