package optimizer

import (
	"math"
	"testing"

	"github.com/nportas/amm-arb-engine/internal/amm"
)

func TestCrossPoolProfit(t *testing.T) {
	// Buy leg: spend quote on the cheap pool (2000/unit). Sell leg: sell
	// the proceeds on the expensive pool (2200/unit).
	buyLeg := amm.Pool{ReserveIn: 2_000_000, ReserveOut: 1000}
	sellLeg := amm.Pool{ReserveIn: 1000, ReserveOut: 2_200_000}

	profit := CrossPoolProfit(buyLeg, sellLeg, 300, 0.0009, 5)
	t.Logf("profit at size 300: %.4f", profit)
	if profit <= 0 {
		t.Errorf("Expected positive profit on a 10%% price gap, got %f", profit)
	}

	// Identical legs round-trip at a loss of two fees plus costs.
	flat := amm.Pool{ReserveIn: 1000, ReserveOut: 2_000_000}
	loss := CrossPoolProfit(flat.Reversed(), flat, 300, 0.0009, 5)
	if loss >= 0 {
		t.Errorf("Expected a loss on identical pools, got %f", loss)
	}
}

func TestCrossPoolOptimalSize(t *testing.T) {
	buyLeg := amm.Pool{ReserveIn: 2_000_000, ReserveOut: 1000}
	sellLeg := amm.Pool{ReserveIn: 1000, ReserveOut: 2_200_000}

	size, profit := CrossPoolOptimalSize(buyLeg, sellLeg, 0.0009, 5)
	t.Logf("optimal size=%.4f profit=%.4f", size, profit)

	if size <= 0 || profit <= 0 {
		t.Fatalf("Expected a profitable size, got size=%f profit=%f", size, profit)
	}

	// Scan is bounded by 30% of the smaller input reserve (the sell leg's
	// 1000 units here).
	if size > 300+1e-9 {
		t.Errorf("Size %f exceeds the scan bound 300", size)
	}

	// The reported profit must match re-evaluating the reported size.
	recomputed := CrossPoolProfit(buyLeg, sellLeg, size, 0.0009, 5)
	if math.Abs(recomputed-profit) > 1e-9 {
		t.Errorf("Reported profit %f != recomputed %f", profit, recomputed)
	}
}

func TestCrossPoolOptimalSizeNoOpportunity(t *testing.T) {
	// Same price on both legs: fees guarantee every scanned size loses.
	pool := amm.Pool{ReserveIn: 1000, ReserveOut: 2_000_000}

	size, profit := CrossPoolOptimalSize(pool.Reversed(), pool, 0.0009, 5)
	if size != 0 || profit != 0 {
		t.Errorf("Expected (0, 0) with no price gap, got (%f, %f)", size, profit)
	}
}

func TestCrossPoolOptimalSizeDegenerateLeg(t *testing.T) {
	sellLeg := amm.Pool{ReserveIn: 1000, ReserveOut: 2_200_000}

	size, profit := CrossPoolOptimalSize(amm.Pool{}, sellLeg, 0.0009, 5)
	if size != 0 || profit != 0 {
		t.Errorf("Expected (0, 0) for a degenerate leg, got (%f, %f)", size, profit)
	}
}
