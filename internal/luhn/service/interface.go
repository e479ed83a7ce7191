// Package service implements the Luhn checksum and the template-driven number
// generator built on top of it.
package service

import (
	"github.com/allisson/luhnify/internal/luhn/domain"
)

// RandomSource yields uniform integers in [0, n). Implementations handed to a
// generator shared between goroutines must be safe for concurrent use.
type RandomSource interface {
	IntN(n int) int
}

// PatternGenerator resolves template wildcards into Luhn-valid numbers.
type PatternGenerator interface {
	// Generate returns up to batchCount distinct valid numbers for template.
	// batchCount is clamped into [domain.MinBatchCount, domain.MaxBatchCount].
	// If at least one number was found the batch is returned even when it is
	// smaller than requested.
	Generate(template string, batchCount int) (*domain.Batch, error)

	// GenerateOne returns a single valid resolution of template.
	GenerateOne(template string) (string, error)
}
