package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records use case level metrics.
type BusinessMetrics interface {
	// RecordOperation counts an operation, e.g. domain "luhn", operation
	// "generate", status "success", "partial" or "error".
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordBatch records the requested and generated sizes of one batch.
	RecordBatch(ctx context.Context, domain string, requested, generated int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	generatedCounter metric.Int64Counter
	shortfallCounter metric.Int64Counter
	batchSizeHisto   metric.Int64Histogram
}

// NewBusinessMetrics creates BusinessMetrics on top of meterProvider. Every
// instrument name is prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	generatedCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_numbers_generated_total", namespace),
		metric.WithDescription("Total number of Luhn-valid numbers returned to callers"),
		metric.WithUnit("{number}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generated counter: %w", err)
	}

	shortfallCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_numbers_shortfall_total", namespace),
		metric.WithDescription("Requested numbers that could not be generated"),
		metric.WithUnit("{number}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shortfall counter: %w", err)
	}

	batchSizeHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_batch_size", namespace),
		metric.WithDescription("Requested batch size after clamping"),
		metric.WithUnit("{number}"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch size histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		generatedCounter: generatedCounter,
		shortfallCounter: shortfallCounter,
		batchSizeHisto:   batchSizeHisto,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordBatch(ctx context.Context, domain string, requested, generated int) {
	attrs := metric.WithAttributes(attribute.String("domain", domain))

	b.batchSizeHisto.Record(ctx, int64(requested), attrs)
	b.generatedCounter.Add(ctx, int64(generated), attrs)
	if generated < requested {
		b.shortfallCounter.Add(ctx, int64(requested-generated), attrs)
	}
}

// NoOpBusinessMetrics discards everything; used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordBatch(ctx context.Context, domain string, requested, generated int) {}
