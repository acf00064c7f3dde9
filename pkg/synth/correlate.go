package synth

import (
	"math"
	"math/rand"
)

// correlatedPair produces two Gaussian sequences of length n whose
// Pearson correlation converges to the configured coefficient. Two
// independent standard-normal streams x1, x2 are combined as
//
//	x2' = rho*x1 + sqrt(1-rho^2)*x2
//
// which keeps x2' at unit variance while fixing its population
// correlation with x1 at exactly rho, then both are rescaled to the
// requested marginal mean and standard deviation.
func correlatedPair(rng *rand.Rand, n int, spec CorrelatedPair) ([]float64, []float64) {
	v1 := make([]float64, n)
	v2 := make([]float64, n)

	rho := spec.Correlation
	residual := math.Sqrt(1 - rho*rho)

	for i := 0; i < n; i++ {
		x1 := rng.NormFloat64()
		x2 := rho*x1 + residual*rng.NormFloat64()
		v1[i] = x1*spec.StdDev1 + spec.Mean1
		v2[i] = x2*spec.StdDev2 + spec.Mean2
	}
	return v1, v2
}
