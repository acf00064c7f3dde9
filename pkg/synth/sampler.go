package synth

import (
	"math"
	"math/rand"
)

// All samplers draw from the stream passed in by the caller. Parameters
// are assumed to be validated already; Generate runs Validate before any
// sampler touches the stream.

// sampleNormal draws n iid values from Normal(mean, std).
func sampleNormal(rng *rand.Rand, n int, p GaussianParams) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()*p.StdDev + p.Mean
	}
	return out
}

// sampleAges draws from Normal(mean, std) and narrows each draw to an
// integer by truncation toward zero, matching the original pipeline's
// float-to-int cast.
func sampleAges(rng *rand.Rand, n int, p GaussianParams) []float64 {
	out := sampleNormal(rng, n, p)
	for i, v := range out {
		out[i] = math.Trunc(v)
	}
	return out
}

// sampleGamma draws n iid values from Gamma(shape, scale). Results are
// always non-negative.
func sampleGamma(rng *rand.Rand, n int, p GammaParams) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = gammaDraw(rng, p.Shape) * p.Scale
	}
	return out
}

// gammaDraw samples a unit-scale Gamma(shape) variate using the
// Marsaglia-Tsang squeeze method. Shapes below one are boosted through
// the Gamma(shape+1) identity.
func gammaDraw(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return gammaDraw(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}

// sampleBernoulli draws n iid 0/1 indicators with success probability p.
func sampleBernoulli(rng *rand.Rand, n int, p float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		if rng.Float64() < p {
			out[i] = 1
		}
	}
	return out
}
