package arbitrage

import "github.com/nportas/amm-arb-engine/internal/amm"

// Direction identifies which pool an arbitrage buys from. Pools are
// quoted in the same orientation (spot price = reserveOut/reserveIn, the
// quote-denominated price of the base token), so the cheaper pool is the
// one to buy on.
type Direction int

const (
	// DirectionNone means no actionable price gap.
	DirectionNone Direction = iota
	// BuyPoolA buys on pool A and sells on pool B.
	BuyPoolA
	// BuyPoolB buys on pool B and sells on pool A.
	BuyPoolB
)

// String returns a human-readable direction.
func (d Direction) String() string {
	switch d {
	case BuyPoolA:
		return "buy-a-sell-b"
	case BuyPoolB:
		return "buy-b-sell-a"
	default:
		return "none"
	}
}

// PriceGap is the result of comparing two pools' spot prices.
type PriceGap struct {
	Found     bool
	DiffPct   float64
	Direction Direction
	// BuyPrice and SellPrice are the spot prices of the cheaper and the
	// more expensive pool respectively.
	BuyPrice  float64
	SellPrice float64
}

// DetectPriceGap compares the spot prices of two same-oriented pools and
// reports whether their relative difference |pA-pB| / min(pA,pB) * 100
// clears minPriceDiffPct. A degenerate pool on either side means there is
// no trustworthy gap.
func DetectPriceGap(poolA, poolB amm.Pool, minPriceDiffPct float64) PriceGap {
	priceA := poolA.SpotPrice()
	priceB := poolB.SpotPrice()
	if priceA <= 0 || priceB <= 0 {
		return PriceGap{}
	}

	lower, higher := priceA, priceB
	direction := BuyPoolA
	if priceB < priceA {
		lower, higher = priceB, priceA
		direction = BuyPoolB
	}

	diffPct := (higher - lower) / lower * 100
	if diffPct < minPriceDiffPct {
		return PriceGap{DiffPct: diffPct}
	}

	return PriceGap{
		Found:     true,
		DiffPct:   diffPct,
		Direction: direction,
		BuyPrice:  lower,
		SellPrice: higher,
	}
}
