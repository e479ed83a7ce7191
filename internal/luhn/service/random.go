package service

import (
	"math/rand/v2"
	"sync"
)

type globalSource struct{}

// NewRandomSource returns a source backed by the math/rand/v2 top-level
// generator. It is safe for concurrent use and is not cryptographically secure.
func NewRandomSource() RandomSource {
	return globalSource{}
}

// IntN returns a uniform integer in [0, n).
func (globalSource) IntN(n int) int {
	//nolint:gosec // synthetic test numbers, not secrets
	return rand.IntN(n)
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a reproducible source. Two sources built from the same
// seed yield the same sequence. Calls are serialized with a mutex.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{
		//nolint:gosec // reproducible sequences are the point of this source
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// IntN returns the next uniform integer in [0, n).
func (s *seededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// RandomSourceFromSeed returns a seeded source, or the shared nondeterministic
// source when seed is zero.
func RandomSourceFromSeed(seed uint64) RandomSource {
	if seed == 0 {
		return NewRandomSource()
	}
	return NewSeededSource(seed)
}
