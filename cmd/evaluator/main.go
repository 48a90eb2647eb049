// Command evaluator runs the arbitrage engine over a pool snapshot file
// and logs the evaluation of every pair. It is a thin host harness: all
// inputs come from the snapshot, all policy from the config file, and
// nothing is executed on-chain.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nportas/amm-arb-engine/internal/arbitrage"
	"github.com/nportas/amm-arb-engine/internal/platform/config"
	"github.com/nportas/amm-arb-engine/internal/platform/observability"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	serveMetrics := flag.Bool("serve-metrics", false, "keep serving /metrics after evaluation until interrupted")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(*configPath)

	logger := observability.NewLogger(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	metrics, err := observability.NewMetrics("arb-evaluator", cfg.Observability.Metrics.Enabled)
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	tracerProvider, err := observability.NewTracerProvider(ctx, "arb-evaluator", cfg.Observability.Tracing.Endpoint, cfg.Observability.Tracing.Enabled)
	if err != nil {
		log.Fatalf("Failed to create tracer: %v", err)
	}
	defer tracerProvider.Shutdown(context.Background())

	snapshot, err := LoadSnapshot(cfg.Snapshot.Path)
	if err != nil {
		logger.LogError(ctx, "failed to load snapshot", err, "path", cfg.Snapshot.Path)
		log.Fatalf("Failed to load snapshot: %v", err)
	}
	logger.LogInfo(ctx, "snapshot loaded", "path", cfg.Snapshot.Path, "pairs", len(snapshot.Pairs))

	evaluator := arbitrage.NewEvaluator(arbitrage.EvaluatorConfig{
		Logger:           logger,
		Metrics:          metrics,
		Tracer:           observability.NewTracer("arb-evaluator"),
		BatchConcurrency: cfg.Engine.BatchConcurrency,
	})

	g, gctx := errgroup.WithContext(ctx)

	var server *http.Server
	if cfg.Observability.Metrics.Enabled && *serveMetrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		server = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.LogInfo(gctx, "serving metrics", "port", cfg.HTTP.Port)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		evaluatePairs(gctx, logger, evaluator, snapshot, cfg.Engine.Policy())
		if server == nil {
			stop() // one-shot run, unblock the group
		}
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.LogError(ctx, "evaluator exited with error", err)
	}
}

func evaluatePairs(ctx context.Context, logger *observability.Logger, evaluator *arbitrage.Evaluator, snapshot *Snapshot, policy arbitrage.Config) {
	executable := 0
	for _, pair := range snapshot.Pairs {
		result := evaluator.Evaluate(
			ctx,
			pair.PoolA.Pool(), pair.PoolB.Pool(),
			toSamples(pair.SamplesA), toSamples(pair.SamplesB),
			policy,
		)

		logger.LogInfo(ctx, "pair evaluated",
			"pair", pair.Name,
			"summary", result.FormatCompact(),
			"should_execute", result.ShouldExecute,
			"optimal_amount", result.OptimalAmount,
			"expected_profit", result.ExpectedProfit,
		)
		if result.ShouldExecute {
			executable++
		}
	}

	logger.LogInfo(ctx, "evaluation complete",
		"pairs", len(snapshot.Pairs),
		"executable", executable,
	)
}
