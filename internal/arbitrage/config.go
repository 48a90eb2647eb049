// Package arbitrage composes the pricing, optimization, and path layers
// into the full opportunity evaluation pipeline.
package arbitrage

// Config is the per-call evaluation policy. It is always supplied
// explicitly by the caller and passed by value into the pipeline; the
// engine never defaults or stores it, which keeps every evaluation pure
// and reproducible.
type Config struct {
	// GasCost is the execution cost charged against every opportunity,
	// denominated in the quote token.
	GasCost float64

	// FlashloanFeePct is the proportional flashloan fee as a fraction:
	// repayment = amount * (1 + FlashloanFeePct).
	FlashloanFeePct float64

	// MinPriceDiffPct is the minimum relative price gap, in percent,
	// required to consider two pools at all.
	MinPriceDiffPct float64

	// MaxTWAPDeviationPct bounds how far, in percent, the buy pool's spot
	// price may deviate from its time-weighted reference.
	MaxTWAPDeviationPct float64

	// MinProfitThreshold is the expected-profit floor for execution.
	MinProfitThreshold float64
}
