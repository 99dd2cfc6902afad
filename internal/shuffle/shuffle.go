// Package shuffle provides an unbiased in-place Fisher-Yates shuffle.
package shuffle

import "math/rand/v2"

// Source is the randomness a shuffle draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default draws from the process-wide generator.
var Default Source = globalSource{}

// Seeded returns a deterministic source for tests and replays.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Slice shuffles s in place. Every permutation is equally likely when src
// is uniform. A nil src uses Default.
func Slice[T any](src Source, s []T) {
	if src == nil {
		src = Default
	}
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Copy returns a shuffled copy of s, leaving s untouched.
func Copy[T any](src Source, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	Slice(src, out)
	return out
}
