// Package rng provides the seedable pseudo-random source used for order
// and customer generation. Values are reproducible only when the caller
// supplies a seed.
package rng

import (
	"math"
	"time"
)

// LCG parameters (Numerical Recipes).
const (
	multiplier = 1664525
	increment  = 1013904223
	modulus    = 1 << 32
)

// Source is a linear congruential generator. Not safe for concurrent use.
type Source struct {
	state uint32
}

// New creates a source. A nil seed seeds from the wall clock.
func New(seed *int64) *Source {
	if seed == nil {
		return &Source{state: uint32(time.Now().UnixMilli())}
	}
	return &Source{state: uint32(*seed)}
}

// Seeded is shorthand for New(&seed).
func Seeded(seed int64) *Source {
	return New(&seed)
}

// Float returns a value in [0, 1).
func (s *Source) Float() float64 {
	s.state = s.state*multiplier + increment
	return float64(s.state) / modulus
}

// Intn returns an integer in [min, max], both inclusive. If max < min,
// min is returned.
func (s *Source) Intn(min, max int) int {
	if max < min {
		return min
	}
	r := s.Float()
	return int(math.Floor(float64(min) + r*float64(max-min+1)))
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float() < p
}
