package usecase

import (
	"context"
	"time"

	"github.com/allisson/luhnify/internal/luhn/domain"
	"github.com/allisson/luhnify/internal/metrics"
)

// generatorUseCaseWithMetrics decorates GeneratorUseCase with metrics instrumentation.
type generatorUseCaseWithMetrics struct {
	next    GeneratorUseCase
	metrics metrics.BusinessMetrics
}

// NewGeneratorUseCaseWithMetrics wraps a GeneratorUseCase with metrics recording.
func NewGeneratorUseCaseWithMetrics(useCase GeneratorUseCase, m metrics.BusinessMetrics) GeneratorUseCase {
	return &generatorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Generate records metrics for generation runs. Partial batches are recorded
// with status "partial".
func (g *generatorUseCaseWithMetrics) Generate(
	ctx context.Context,
	template string,
	batchCount int,
) (*domain.Batch, error) {
	start := time.Now()
	batch, err := g.next.Generate(ctx, template, batchCount)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case batch.Partial():
		status = "partial"
	}

	if batch != nil {
		g.metrics.RecordBatch(ctx, "luhn", batch.Requested, len(batch.Numbers))
	}
	g.metrics.RecordOperation(ctx, "luhn", "generate", status)
	g.metrics.RecordDuration(ctx, "luhn", "generate", time.Since(start), status)

	return batch, err
}

// Validate records metrics for checksum validation.
func (g *generatorUseCaseWithMetrics) Validate(ctx context.Context, number string) (*domain.Validation, error) {
	start := time.Now()
	validation, err := g.next.Validate(ctx, number)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "luhn", "validate", status)
	g.metrics.RecordDuration(ctx, "luhn", "validate", time.Since(start), status)

	return validation, err
}
