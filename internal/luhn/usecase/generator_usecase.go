package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/luhnify/internal/luhn/domain"
	"github.com/allisson/luhnify/internal/luhn/service"
)

// generatorUseCase implements GeneratorUseCase on top of a PatternGenerator.
type generatorUseCase struct {
	generator service.PatternGenerator
	logger    *slog.Logger
}

// NewGeneratorUseCase creates a new GeneratorUseCase.
func NewGeneratorUseCase(generator service.PatternGenerator, logger *slog.Logger) GeneratorUseCase {
	return &generatorUseCase{
		generator: generator,
		logger:    logger,
	}
}

// Generate runs one generation to completion. The run itself is not
// interruptible; an already cancelled context stops it before it starts.
func (g *generatorUseCase) Generate(
	ctx context.Context,
	template string,
	batchCount int,
) (*domain.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch, err := g.generator.Generate(template, batchCount)
	if err != nil {
		return nil, err
	}

	if batch.Partial() {
		g.logger.WarnContext(ctx, "partial batch generated",
			slog.String("template", batch.Template),
			slog.Int("requested", batch.Requested),
			slog.Int("generated", len(batch.Numbers)),
		)
	}

	return batch, nil
}

// Validate reports whether number passes the checksum and which final digit would.
func (g *generatorUseCase) Validate(ctx context.Context, number string) (*domain.Validation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if number == "" {
		return nil, domain.ErrInvalidNumber
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return nil, domain.ErrInvalidNumber
		}
	}

	// A lone digit is valid only as zero
	checkDigit := byte('0')
	if len(number) > 1 {
		var err error
		checkDigit, err = service.CheckDigit(number[:len(number)-1])
		if err != nil {
			return nil, err
		}
	}

	return &domain.Validation{
		Number:     number,
		Valid:      service.IsValid(number),
		CheckDigit: string(checkDigit),
	}, nil
}
