package autodiff

import (
	"math"
	"math/rand"
)

// UniformWeights draws k weights for a linear node.
//
// Values come from the uniform distribution U(-1/sqrt(k), 1/sqrt(k)), where
// k counts every argument including the bias.
//
// Parameters:
//   - rng: Source of randomness; seeding it makes initialization reproducible
//   - k: Number of weights
//
// Returns a new slice of k weights.
func UniformWeights(rng *rand.Rand, k int) []float64 {
	weights := make([]float64, k)
	if k == 0 {
		return weights
	}
	bound := 1.0 / math.Sqrt(float64(k))
	for i := range weights {
		weights[i] = (rng.Float64()*2.0 - 1.0) * bound
	}
	return weights
}
