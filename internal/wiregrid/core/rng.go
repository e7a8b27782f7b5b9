package core

import (
	"math/rand/v2"
	"time"
)

// RNG is the seeded random source used by generation. One RNG serves a
// whole Generate call so that a seed reproduces the same level.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG creates a new RNG with the given seed. A zero seed selects the
// current time, which makes the sequence non-reproducible.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := uint64(seed)
	return &RNG{
		seed: seed,
		r:    rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the effective seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	return r.r.Float64()
}

// FloatRange returns a random float64 in [min, max).
func (r *RNG) FloatRange(min, max float64) float64 {
	return min + r.r.Float64()*(max-min)
}

// Int returns a random int in [min, max], inclusive of both bounds.
// It returns min when max < min.
func (r *RNG) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min+1)
}

// Shuffle returns a uniformly permuted copy of items. The input is not modified.
func Shuffle[T any](r *RNG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	r.r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
