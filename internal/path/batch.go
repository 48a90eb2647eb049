package path

import (
	"context"
	"runtime"

	"github.com/nportas/amm-arb-engine/internal/amm"
	"github.com/nportas/amm-arb-engine/internal/platform/worker"
)

// Evaluation is the outcome of one flashloan path in a batch.
type Evaluation struct {
	// Profit is the path's final output minus flashloan repayment and gas.
	Profit float64
	// SlippagePct is the path's summed multi-hop slippage.
	SlippagePct float64
	// PathIndex is the path's position in the input batch.
	PathIndex int
}

// EvaluateBatch prices a set of independent flashloan paths. Each path is
// funded with its own amount, pays the shared flashloan fee on repayment
// and its own gas cost, and is evaluated in isolation — there is no
// cross-path interaction. Results come back in input order.
//
// Misaligned inputs (a path without a matching amount or gas entry)
// truncate the batch to the shortest slice.
func EvaluateBatch(ctx context.Context, paths [][]amm.Pool, amounts []float64, flashloanFee float64, gasCosts []float64) []Evaluation {
	n := len(paths)
	if len(amounts) < n {
		n = len(amounts)
	}
	if len(gasCosts) < n {
		n = len(gasCosts)
	}
	if n == 0 {
		return nil
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	pool := worker.NewPool(ctx, workers, n)
	defer pool.Close()

	jobs := make([]worker.Job, n)
	for i := 0; i < n; i++ {
		hops := paths[i]
		amount := amounts[i]
		gasCost := gasCosts[i]
		index := i
		jobs[i] = worker.Job{
			Index: index,
			Execute: func(context.Context) (any, error) {
				return evaluatePath(hops, amount, flashloanFee, gasCost, index), nil
			},
		}
	}

	results := pool.RunOrdered(jobs)

	evaluations := make([]Evaluation, n)
	for i, result := range results {
		if eval, ok := result.Value.(Evaluation); ok {
			evaluations[i] = eval
		} else {
			evaluations[i] = Evaluation{PathIndex: i}
		}
	}
	return evaluations
}

// evaluatePath prices one path: run the flashloan amount through every
// hop, repay principal plus fee, subtract gas.
func evaluatePath(pools []amm.Pool, amount, flashloanFee, gasCost float64, index int) Evaluation {
	eval := Evaluation{PathIndex: index}
	if amount <= 0 || len(pools) == 0 {
		return eval
	}

	eval.SlippagePct = MultiHopSlippage(pools, amount)

	out, ok := hopOutput(pools, amount)
	if !ok {
		// Degenerate pool: the full loan cost is lost on paper.
		eval.Profit = -(amount*(1+flashloanFee) + gasCost)
		return eval
	}

	eval.Profit = out - amount*(1+flashloanFee) - gasCost
	return eval
}
