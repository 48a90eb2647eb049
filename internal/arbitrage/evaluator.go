package arbitrage

import (
	"context"
	"time"

	"github.com/nportas/amm-arb-engine/internal/amm"
	"github.com/nportas/amm-arb-engine/internal/optimizer"
	"github.com/nportas/amm-arb-engine/internal/pricing"
	"github.com/nportas/amm-arb-engine/internal/platform/observability"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Evaluator runs the opportunity pipeline: detect a cross-pool price gap,
// validate the buy price against a time-weighted reference, optimize the
// trade size, estimate net profit, and gate on the profit threshold.
// Evaluations hold no state between calls and may run concurrently.
type Evaluator struct {
	logger       *observability.Logger
	metrics      *observability.Metrics
	tracer       observability.Tracer
	batchLimiter *semaphore.Weighted
	concurrency  int
}

// EvaluatorConfig configures an Evaluator. All fields are optional;
// missing observability hooks degrade to no-ops.
type EvaluatorConfig struct {
	Logger  *observability.Logger
	Metrics *observability.Metrics
	Tracer  observability.Tracer

	// BatchConcurrency bounds how many batch entries are evaluated at
	// once. Defaults to 4.
	BatchConcurrency int
}

// ReserveQuad is one batch entry: the reserves of two same-oriented pools
// trading the same pair.
type ReserveQuad struct {
	AReserveIn  float64
	AReserveOut float64
	BReserveIn  float64
	BReserveOut float64
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	if cfg.Logger == nil {
		cfg.Logger = observability.NewNopLogger()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = observability.NewNoopTracer()
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 4
	}

	return &Evaluator{
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		tracer:       cfg.Tracer,
		batchLimiter: semaphore.NewWeighted(int64(cfg.BatchConcurrency)),
		concurrency:  cfg.BatchConcurrency,
	}
}

// Evaluate runs the full pipeline over two pools of the same pair.
// samplesA and samplesB are the pools' recent price windows; the buy
// side's window backs the TWAP manipulation check. The result triple is
// returned for every outcome, including rejections.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	poolA, poolB amm.Pool,
	samplesA, samplesB []pricing.PriceSample,
	cfg Config,
) Result {
	ctx, span := e.tracer.StartSpan(ctx, "Evaluator.Evaluate",
		observability.WithAttributes(
			attribute.Float64("min_price_diff_pct", cfg.MinPriceDiffPct),
			attribute.Float64("min_profit_threshold", cfg.MinProfitThreshold),
		),
	)
	defer span.End()

	// Detect.
	stageStart := time.Now()
	gap := DetectPriceGap(poolA, poolB, cfg.MinPriceDiffPct)
	e.recordStage(ctx, "detect", stageStart)
	if !gap.Found {
		span.AddEvent("rejected", attribute.String("gate", string(GatePriceGap)))
		return e.finish(ctx, Result{PriceDiffPct: gap.DiffPct, RejectedBy: GatePriceGap})
	}
	span.SetAttributes(
		attribute.String("direction", gap.Direction.String()),
		attribute.Float64("price_diff_pct", gap.DiffPct),
	)

	buyPool, sellPool, buySamples := poolA, poolB, samplesA
	if gap.Direction == BuyPoolB {
		buyPool, sellPool, buySamples = poolB, poolA, samplesB
	}

	// Validate against the time-weighted reference; fail closed.
	stageStart = time.Now()
	twap := pricing.TWAP(buySamples)
	valid := pricing.ValidateWithTWAP(gap.BuyPrice, twap, cfg.MaxTWAPDeviationPct)
	e.recordStage(ctx, "validate", stageStart)
	if !valid {
		e.logger.LogDebug(ctx, "opportunity rejected by twap check",
			"spot_price", gap.BuyPrice,
			"twap", twap,
			"max_deviation_pct", cfg.MaxTWAPDeviationPct,
		)
		span.AddEvent("rejected", attribute.String("gate", string(GateTWAP)))
		return e.finish(ctx, Result{
			Direction:    gap.Direction,
			PriceDiffPct: gap.DiffPct,
			RejectedBy:   GateTWAP,
		})
	}

	// Optimize and estimate. The buy leg spends the quote token, so it
	// runs against the cheaper pool reversed; the sell leg unwinds the
	// position on the more expensive pool as oriented.
	stageStart = time.Now()
	result := gateProfit(buyPool, sellPool, gap, cfg)
	e.recordStage(ctx, "optimize", stageStart)
	if result.RejectedBy != GateNone {
		span.AddEvent("rejected", attribute.String("gate", string(result.RejectedBy)))
	}
	span.SetAttributes(
		attribute.Float64("optimal_amount", result.OptimalAmount),
		attribute.Float64("expected_profit", result.ExpectedProfit),
		attribute.Bool("should_execute", result.ShouldExecute),
	)

	return e.finish(ctx, result)
}

// EvaluateBatch applies the pipeline's gate logic, minus the TWAP step,
// independently across a list of reserve quadruples. Results preserve
// input order; entries are evaluated concurrently under the batch limit.
func (e *Evaluator) EvaluateBatch(ctx context.Context, quads []ReserveQuad, cfg Config) []Result {
	ctx, span := e.tracer.StartSpan(ctx, "Evaluator.EvaluateBatch",
		observability.WithAttributes(
			attribute.Int("batch_size", len(quads)),
			attribute.Int("concurrency", e.concurrency),
		),
	)
	defer span.End()

	if e.metrics != nil {
		e.metrics.RecordBatchSize(ctx, len(quads))
	}

	results := make([]Result, len(quads))
	g, gctx := errgroup.WithContext(ctx)
	for i, quad := range quads {
		i, quad := i, quad
		if err := e.batchLimiter.Acquire(gctx, 1); err != nil {
			span.NoticeError(err)
			break
		}

		g.Go(func() error {
			defer e.batchLimiter.Release(1)
			results[i] = e.evaluateQuad(gctx, quad, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.NoticeError(err)
	}

	return results
}

// evaluateQuad is the batch variant of the pipeline: detect, optimize,
// gate. No TWAP reference is available for batch entries.
func (e *Evaluator) evaluateQuad(ctx context.Context, quad ReserveQuad, cfg Config) Result {
	poolA := amm.Pool{ReserveIn: quad.AReserveIn, ReserveOut: quad.AReserveOut}
	poolB := amm.Pool{ReserveIn: quad.BReserveIn, ReserveOut: quad.BReserveOut}

	gap := DetectPriceGap(poolA, poolB, cfg.MinPriceDiffPct)
	if !gap.Found {
		return e.finish(ctx, Result{PriceDiffPct: gap.DiffPct, RejectedBy: GatePriceGap})
	}

	buyPool, sellPool := poolA, poolB
	if gap.Direction == BuyPoolB {
		buyPool, sellPool = poolB, poolA
	}

	return e.finish(ctx, gateProfit(buyPool, sellPool, gap, cfg))
}

// gateProfit runs the optimize, estimate, and gate stages over an
// oriented buy/sell pool pair.
func gateProfit(buyPool, sellPool amm.Pool, gap PriceGap, cfg Config) Result {
	size, profit := optimizer.CrossPoolOptimalSize(
		buyPool.Reversed(), sellPool,
		cfg.FlashloanFeePct, cfg.GasCost,
	)
	if size <= 0 {
		return Result{
			Direction:    gap.Direction,
			PriceDiffPct: gap.DiffPct,
			RejectedBy:   GateSize,
		}
	}

	result := Result{
		OptimalAmount:  size,
		ExpectedProfit: profit,
		Direction:      gap.Direction,
		PriceDiffPct:   gap.DiffPct,
	}
	if profit >= cfg.MinProfitThreshold {
		result.ShouldExecute = true
	} else {
		result.RejectedBy = GateProfit
	}
	return result
}

func (e *Evaluator) finish(ctx context.Context, result Result) Result {
	if e.metrics != nil {
		e.metrics.RecordEvaluation(ctx, result.ShouldExecute, result.ExpectedProfit, string(result.RejectedBy))
	}
	return result
}

func (e *Evaluator) recordStage(ctx context.Context, stage string, start time.Time) {
	if e.metrics != nil {
		e.metrics.RecordStageLatency(ctx, stage, time.Since(start))
	}
}
