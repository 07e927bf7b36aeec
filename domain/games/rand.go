package games

import "math/rand"

// Rand is the random source every resolver draws from. The production source
// wraps the stdlib global generator; tests substitute a stub to make outcomes
// fully deterministic.
type Rand interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

type systemRand struct{}

func (systemRand) Intn(n int) int   { return rand.Intn(n) }
func (systemRand) Float64() float64 { return rand.Float64() }

// NewRand returns the process-wide random source. The stdlib global generator
// is safe for concurrent use across request flows and the mining loop.
func NewRand() Rand {
	return systemRand{}
}

// WeightedPick draws an index with probability weight[i]/sum(weights).
func WeightedPick(r Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := r.Intn(total)
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}
