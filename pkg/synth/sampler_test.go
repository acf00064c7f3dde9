package synth

import (
	"math"
	"math/rand"
	"testing"
)

func TestGammaDrawMoments(t *testing.T) {
	cases := []GammaParams{
		{Shape: 2.0, Scale: 2.0},
		{Shape: 2.0, Scale: 5.0},
		{Shape: 0.5, Scale: 1.0},
		{Shape: 9.0, Scale: 0.5},
	}

	for _, p := range cases {
		rng := rand.New(rand.NewSource(7))
		values := sampleGamma(rng, 200000, p)

		wantMean := p.Shape * p.Scale
		wantStd := math.Sqrt(p.Shape) * p.Scale
		mean, std := moments(values)

		if math.Abs(mean-wantMean) > 0.05*wantMean+0.02 {
			t.Fatalf("gamma(%v,%v) mean %.4f, expected %.4f", p.Shape, p.Scale, mean, wantMean)
		}
		if math.Abs(std-wantStd) > 0.05*wantStd+0.02 {
			t.Fatalf("gamma(%v,%v) std %.4f, expected %.4f", p.Shape, p.Scale, std, wantStd)
		}
		for i, v := range values {
			if v < 0 {
				t.Fatalf("gamma(%v,%v)[%d] = %v, expected non-negative", p.Shape, p.Scale, i, v)
			}
		}
	}
}

func TestNormalSampleMoments(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	values := sampleNormal(rng, 100000, GaussianParams{Mean: 60, StdDev: 10})

	mean, std := moments(values)
	if math.Abs(mean-60) > 0.15 {
		t.Fatalf("mean %.4f, expected 60", mean)
	}
	if math.Abs(std-10) > 0.15 {
		t.Fatalf("std %.4f, expected 10", std)
	}
}

func TestBernoulliSampleRate(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	values := sampleBernoulli(rng, 100000, 0.3)

	var sum float64
	for _, v := range values {
		if v != 0 && v != 1 {
			t.Fatalf("non-binary draw %v", v)
		}
		sum += v
	}
	rate := sum / float64(len(values))
	if math.Abs(rate-0.3) > 0.01 {
		t.Fatalf("rate %.4f, expected 0.3 +/- 0.01", rate)
	}
}

func TestBernoulliDegenerateProbabilities(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	for _, v := range sampleBernoulli(rng, 1000, 0) {
		if v != 0 {
			t.Fatal("p=0 must never draw 1")
		}
	}
	for _, v := range sampleBernoulli(rng, 1000, 1) {
		if v != 1 {
			t.Fatal("p=1 must always draw 1")
		}
	}
}
