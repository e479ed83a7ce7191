package service

import (
	"github.com/allisson/luhnify/internal/luhn/domain"
)

type patternGenerator struct {
	source        RandomSource
	maxAttempts   int
	maxDuplicates int
}

// Option configures a pattern generator.
type Option func(*patternGenerator)

// WithMaxAttempts overrides the per-number attempt cap (domain.MaxAttempts).
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *patternGenerator) {
		if n >= 1 {
			g.maxAttempts = n
		}
	}
}

// WithMaxDuplicates overrides how many repeated numbers in a row end a batch
// early (domain.MaxConsecutiveDuplicates). Values below 1 are ignored.
func WithMaxDuplicates(n int) Option {
	return func(g *patternGenerator) {
		if n >= 1 {
			g.maxDuplicates = n
		}
	}
}

// NewPatternGenerator creates a generator that resolves wildcards by rejection
// sampling: every wildcard gets an independent digit from source and the
// candidate is kept only if it passes the Luhn check.
func NewPatternGenerator(source RandomSource, opts ...Option) PatternGenerator {
	g := &patternGenerator{
		source:        source,
		maxAttempts:   domain.MaxAttempts,
		maxDuplicates: domain.MaxConsecutiveDuplicates,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate creates a batch of distinct Luhn-valid numbers matching template.
// Each number gets the full attempt budget; repeats of numbers already in the
// batch are counted separately and only close the batch after
// maxDuplicates of them in a row.
func (g *patternGenerator) Generate(template string, batchCount int) (*domain.Batch, error) {
	tpl, err := domain.ParseTemplate(template)
	if err != nil {
		return nil, err
	}

	requested := domain.ClampBatchCount(batchCount)
	batch := &domain.Batch{
		Template:  tpl.String(),
		Numbers:   make([]string, 0, requested),
		Requested: requested,
	}

	// A literal template has at most one solution
	if !tpl.HasWildcards() {
		number, err := g.resolve(tpl)
		if err != nil {
			return nil, err
		}
		batch.Numbers = append(batch.Numbers, number)
		return batch, nil
	}

	seen := make(map[string]struct{}, requested)
	duplicates := 0

	for len(batch.Numbers) < requested {
		number, err := g.resolve(tpl)
		if err != nil {
			// Keep what was found; only an empty batch is a failure
			if len(batch.Numbers) == 0 {
				return nil, err
			}
			break
		}

		if _, dup := seen[number]; dup {
			duplicates++
			if duplicates >= g.maxDuplicates {
				break
			}
			continue
		}

		duplicates = 0
		seen[number] = struct{}{}
		batch.Numbers = append(batch.Numbers, number)
	}

	return batch, nil
}

// GenerateOne creates a single Luhn-valid number matching template.
func (g *patternGenerator) GenerateOne(template string) (string, error) {
	tpl, err := domain.ParseTemplate(template)
	if err != nil {
		return "", err
	}
	return g.resolve(tpl)
}

// resolve samples candidates until one is Luhn valid, giving up after
// maxAttempts invalid draws.
func (g *patternGenerator) resolve(tpl domain.Template) (string, error) {
	if !tpl.HasWildcards() {
		number := tpl.String()
		if IsValid(number) {
			return number, nil
		}
		return "", domain.ErrGenerationExhausted
	}

	candidate := []byte(tpl.String())
	wildcards := tpl.Wildcards()

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		for _, pos := range wildcards {
			//nolint:gosec // IntN(10) is bounded [0,9]
			candidate[pos] = byte('0' + g.source.IntN(10))
		}

		if number := string(candidate); IsValid(number) {
			return number, nil
		}
	}

	return "", domain.ErrGenerationExhausted
}
