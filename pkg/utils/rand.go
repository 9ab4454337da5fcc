package utils

import (
	"math/rand"
	"sync"
)

// closedUnitSteps is the resolution of UniformClosed: 2^53 equal steps, so both
// 0 and 1 are reachable and every step is exactly representable as a float64.
const closedUnitSteps = 1 << 53

// RandSource is a thread-safe random number generator
type RandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandSource creates a new random source with the given seed.
// The seed is used as-is; callers wanting an unpredictable stream should
// obtain one from NewSeed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Int63 returns a non-negative random int64
func (r *RandSource) Int63() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int63()
}

// UniformClosed returns a uniformly distributed random number in [lo, hi],
// both endpoints included. When lo == hi the result is exactly lo.
func (r *RandSource) UniformClosed(lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	r.mu.Lock()
	u := float64(r.rng.Int63n(closedUnitSteps+1)) / closedUnitSteps
	r.mu.Unlock()

	// Interpolating avoids hi-lo, which overflows for wide finite bounds.
	// Rounding can still land a hair outside [lo, hi].
	return ClampFloat64(lo*(1-u)+hi*u, lo, hi)
}
