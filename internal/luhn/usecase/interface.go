// Package usecase defines the Luhn generation use cases consumed by the HTTP and
// CLI surfaces.
package usecase

import (
	"context"

	"github.com/allisson/luhnify/internal/luhn/domain"
)

// GeneratorUseCase defines the operations exposed to callers.
type GeneratorUseCase interface {
	// Generate resolves template into up to batchCount distinct Luhn-valid numbers.
	// Returns domain.ErrInvalidTemplate or domain.ErrGenerationExhausted on failure.
	Generate(ctx context.Context, template string, batchCount int) (*domain.Batch, error)

	// Validate checks number against the Luhn checksum.
	// Returns domain.ErrInvalidNumber if number is empty or not all digits.
	Validate(ctx context.Context, number string) (*domain.Validation, error)
}
