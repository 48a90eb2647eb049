package pricing

import (
	"math"
	"testing"

	"github.com/nportas/amm-arb-engine/internal/amm"
)

func TestConstantProductSlippage(t *testing.T) {
	pool := amm.Pool{ReserveIn: 1_000_000, ReserveOut: 2_000_000}

	if s := ConstantProductSlippage(pool, 0); s != 0 {
		t.Errorf("Expected 0 slippage for zero trade, got %f", s)
	}
	if s := ConstantProductSlippage(amm.Pool{}, 1000); s != 0 {
		t.Errorf("Expected 0 slippage for degenerate pool, got %f", s)
	}

	small := ConstantProductSlippage(pool, 1_000)
	large := ConstantProductSlippage(pool, 100_000)

	t.Logf("slippage: 1k=%.4f%% 100k=%.4f%%", small, large)

	if small <= 0 {
		t.Fatalf("Expected positive slippage for non-trivial trade, got %f", small)
	}
	if large <= small {
		t.Errorf("Larger trades should slip more: %f <= %f", large, small)
	}

	// The fee alone contributes 0.3%, so any real trade sits above it.
	if small < 0.3 {
		t.Errorf("Slippage %f below the swap fee floor", small)
	}
}

func TestConcentratedSlippage(t *testing.T) {
	pool := amm.ConcentratedPool{Liquidity: 1_000_000, SqrtPrice: 1.5}

	if s := ConcentratedSlippage(pool, -1); s != 0 {
		t.Errorf("Expected 0 slippage for negative trade, got %f", s)
	}

	s := ConcentratedSlippage(pool, 50_000)
	if s <= 0 || s >= 100 {
		t.Errorf("Expected slippage in (0, 100), got %f", s)
	}
}

func TestStableswapSlippageBelowConstantProduct(t *testing.T) {
	// A well-amplified stableswap pool should beat a constant-product
	// pool with the same balanced reserves.
	pool := amm.Pool{ReserveIn: 1_000_000, ReserveOut: 1_000_000}
	amountIn := 50_000.0

	stable := StableswapSlippage(pool, amountIn, 200)
	cp := ConstantProductSlippage(pool, amountIn)

	t.Logf("stableswap=%.4f%% constant-product=%.4f%%", stable, cp)

	if stable >= cp {
		t.Errorf("Stableswap slippage %f should be below constant-product %f", stable, cp)
	}
}

func TestWeightedSlippage(t *testing.T) {
	pool := amm.Pool{ReserveIn: 800_000, ReserveOut: 200_000}

	if s := WeightedSlippage(pool, 0.8, 0, 1000); s != 0 {
		t.Errorf("Expected 0 slippage for zero weight, got %f", s)
	}

	s := WeightedSlippage(pool, 0.8, 0.2, 10_000)
	if s <= 0 {
		t.Errorf("Expected positive slippage, got %f", s)
	}
}

func TestBestRouteSlippage(t *testing.T) {
	if best := BestRouteSlippage(nil); best != 0 {
		t.Errorf("Expected 0 for empty candidate set, got %f", best)
	}
	if best := BestRouteSlippage([]float64{3.2}); best != 3.2 {
		t.Errorf("Expected single candidate back, got %f", best)
	}
	if best := BestRouteSlippage([]float64{3.0, 1.0, 2.0}); best != 1.0 {
		t.Errorf("Expected minimum 1.0, got %f", best)
	}
}

func TestMarketImpact(t *testing.T) {
	pool := amm.Pool{ReserveIn: 1_000_000, ReserveOut: 2_000_000}

	if impact := MarketImpact(pool, 0); impact != 0 {
		t.Errorf("Expected 0 impact for zero trade, got %f", impact)
	}

	impact := MarketImpact(pool, 10_000)
	if impact <= 0 {
		t.Fatalf("Expected positive impact, got %f", impact)
	}

	// A 1% trade moves the spot price by roughly 2% on a constant-product
	// curve (both reserves shift).
	if math.Abs(impact-2) > 0.2 {
		t.Errorf("Impact %f%% far from the ~2%% expected for a 1%% trade", impact)
	}

	larger := MarketImpact(pool, 50_000)
	if larger <= impact {
		t.Errorf("Impact should grow with size: %f <= %f", larger, impact)
	}
}
