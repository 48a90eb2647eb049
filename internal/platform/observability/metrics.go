package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// Metrics holds the engine's metric instruments. A zero-value Metrics
// (disabled) is safe to call; every recording method checks for nil
// instruments.
type Metrics struct {
	meter metric.Meter

	// Opportunity evaluation metrics
	EvaluationsTotal        metric.Int64Counter
	OpportunitiesExecutable metric.Int64Counter
	OpportunitiesRejected   metric.Int64Counter
	ExpectedProfit          metric.Float64Histogram

	// Pipeline internals
	StageLatency metric.Float64Histogram
	BatchSize    metric.Int64Histogram

	exporter *prometheus.Exporter
}

// NewMetrics creates a Metrics instance backed by an OTEL meter provider
// with a Prometheus exporter. When disabled, all instruments are nil and
// every recording method is a no-op.
func NewMetrics(serviceName string, enabled bool) (*Metrics, error) {
	if !enabled {
		return &Metrics{}, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	m := &Metrics{
		meter:    provider.Meter(serviceName),
		exporter: exporter,
	}
	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return m, nil
}

func (m *Metrics) initMetrics() error {
	var err error

	m.EvaluationsTotal, err = m.meter.Int64Counter(
		"arbitrage.evaluations",
		metric.WithDescription("Total opportunity evaluations run"),
	)
	if err != nil {
		return err
	}

	m.OpportunitiesExecutable, err = m.meter.Int64Counter(
		"arbitrage.opportunities.executable",
		metric.WithDescription("Evaluations that passed every gate"),
	)
	if err != nil {
		return err
	}

	m.OpportunitiesRejected, err = m.meter.Int64Counter(
		"arbitrage.opportunities.rejected",
		metric.WithDescription("Evaluations rejected, labeled by gate"),
	)
	if err != nil {
		return err
	}

	m.ExpectedProfit, err = m.meter.Float64Histogram(
		"arbitrage.opportunities.expected_profit",
		metric.WithDescription("Expected net profit of computed opportunities"),
	)
	if err != nil {
		return err
	}

	m.StageLatency, err = m.meter.Float64Histogram(
		"arbitrage.pipeline.stage.duration",
		metric.WithDescription("Pipeline stage duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	m.BatchSize, err = m.meter.Int64Histogram(
		"arbitrage.batch.size",
		metric.WithDescription("Number of entries per batch evaluation"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordEvaluation records the outcome of one opportunity evaluation.
// gate names the pipeline stage that stopped a rejected evaluation.
func (m *Metrics) RecordEvaluation(ctx context.Context, executable bool, expectedProfit float64, gate string) {
	if m.EvaluationsTotal == nil {
		return
	}

	m.EvaluationsTotal.Add(ctx, 1)

	if executable {
		m.OpportunitiesExecutable.Add(ctx, 1)
		m.ExpectedProfit.Record(ctx, expectedProfit)
		return
	}
	m.OpportunitiesRejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("gate", gate),
	))
}

// RecordStageLatency records the duration of a pipeline stage.
func (m *Metrics) RecordStageLatency(ctx context.Context, stage string, duration time.Duration) {
	if m.StageLatency == nil {
		return
	}
	m.StageLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// RecordBatchSize records the size of a batch evaluation.
func (m *Metrics) RecordBatchSize(ctx context.Context, n int) {
	if m.BatchSize == nil {
		return
	}
	m.BatchSize.Record(ctx, int64(n))
}

// Handler returns the HTTP handler serving Prometheus metrics. The OTEL
// Prometheus exporter registers with the default registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
