// Package amm models AMM pool state and the swap output curves of the
// pool types the engine prices: constant-product (V2-style), simplified
// concentrated liquidity (V3-style), stableswap blends, and weighted pools.
package amm

// Pool holds the reserves of a constant-product, stableswap, or weighted
// pool, oriented for a swap: ReserveIn is the pool's balance of the token
// being sold into it, ReserveOut the balance of the token bought out of it.
type Pool struct {
	ReserveIn  float64
	ReserveOut float64
}

// Valid reports whether both reserves are strictly positive. Every output
// function treats an invalid pool as a zero-output pool rather than
// dividing by a degenerate reserve.
func (p Pool) Valid() bool {
	return p.ReserveIn > 0 && p.ReserveOut > 0
}

// SpotPrice returns the instantaneous marginal price ReserveOut/ReserveIn,
// or 0 for a degenerate pool.
func (p Pool) SpotPrice() float64 {
	if !p.Valid() {
		return 0
	}
	return p.ReserveOut / p.ReserveIn
}

// Reversed returns the pool oriented for the opposite swap direction.
func (p Pool) Reversed() Pool {
	return Pool{ReserveIn: p.ReserveOut, ReserveOut: p.ReserveIn}
}

// ConcentratedPool holds the simplified state of a concentrated-liquidity
// pool: active-range liquidity and the square root of the current price.
// This is a continuous approximation, not tick-accurate V3 state.
type ConcentratedPool struct {
	Liquidity float64
	SqrtPrice float64
}

// Valid reports whether liquidity and sqrt price are strictly positive.
func (p ConcentratedPool) Valid() bool {
	return p.Liquidity > 0 && p.SqrtPrice > 0
}
