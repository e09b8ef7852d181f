package core

import (
	"math/rand/v2"
	"time"
)

// Rand is the subset of RNG the generation stages draw from. Tests substitute
// scripted sequences.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// TimeSeed derives a non-zero seed from the wall clock.
func TimeSeed() int64 {
	s := time.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a random value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Int64 returns a non-negative random int64.
func (r *RNG) Int64() int64 { return r.r.Int64() }

// Percent reports true with probability p percent.
func Percent(r Rand, p float64) bool {
	return r.Float64()*100 < p
}
