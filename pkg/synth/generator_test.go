package synth

import (
	"math"
	"testing"
)

func TestGenerateRowCountMatchesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 137

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Len() != 137 {
		t.Fatalf("expected 137 rows, got %d", rs.Len())
	}
	for _, f := range rs.Fields() {
		col, ok := rs.Column(f.Name)
		if !ok {
			t.Fatalf("missing column %s", f.Name)
		}
		if len(col) != 137 {
			t.Fatalf("column %s has %d values", f.Name, len(col))
		}
	}
}

func TestGenerateFieldOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 10

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"age", "weight", "length_of_stay", "survival_time", "event_occurred", "diabetes", "hypertension", "cancer"}
	fields := rs.Fields()
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, name := range want {
		if fields[i].Name != name {
			t.Fatalf("field %d: expected %s, got %s", i, name, fields[i].Name)
		}
	}
}

func TestGenerateDeterministicForFixedSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 200

	first, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range first.Fields() {
		a, _ := first.Column(f.Name)
		b, _ := second.Column(f.Name)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("column %s differs at row %d: %v vs %v", f.Name, i, a[i], b[i])
			}
		}
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 10

	first, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Seed = 43
	second, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := first.Column(FieldWeight)
	b, _ := second.Column(FieldWeight)
	for i := range a {
		if a[i] != b[i] {
			return
		}
	}
	t.Fatal("expected different seeds to produce different weights")
}

func TestGenerateIndicatorsAreBinary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 500

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{FieldEventOccurred, "diabetes", "hypertension", "cancer"} {
		col, ok := rs.Column(name)
		if !ok {
			t.Fatalf("missing column %s", name)
		}
		for i, v := range col {
			if v != 0 && v != 1 {
				t.Fatalf("%s[%d] = %v, expected 0 or 1", name, i, v)
			}
		}
	}
}

func TestGenerateDurationsNonNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 2000
	cfg.LengthOfStay = GammaParams{Shape: 0.5, Scale: 1.5}

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{FieldLengthOfStay, FieldSurvivalTime} {
		col, _ := rs.Column(name)
		for i, v := range col {
			if v < 0 {
				t.Fatalf("%s[%d] = %v, expected non-negative", name, i, v)
			}
		}
	}
}

func TestGenerateZeroSamples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 0

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Len() != 0 {
		t.Fatalf("expected empty record set, got %d rows", rs.Len())
	}
	if len(rs.Fields()) == 0 {
		t.Fatal("expected field set to be preserved for empty record set")
	}
}

func TestGenerateCorrelatedPairReplacesDemographics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 50
	cfg.Correlated = &CorrelatedPair{
		Name1: "systolic_bp", Mean1: 120, StdDev1: 15,
		Name2: "diastolic_bp", Mean2: 80, StdDev2: 10,
		Correlation: 0.6,
	}

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := rs.Column(FieldAge); ok {
		t.Fatal("age column should be replaced by the correlated pair")
	}
	if _, ok := rs.Column(FieldWeight); ok {
		t.Fatal("weight column should be replaced by the correlated pair")
	}

	fields := rs.Fields()
	if fields[0].Name != "systolic_bp" || fields[1].Name != "diastolic_bp" {
		t.Fatalf("correlated pair must lead the field order, got %s, %s", fields[0].Name, fields[1].Name)
	}
}

func TestGenerateCorrelationConverges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 100000
	cfg.Correlated = &CorrelatedPair{
		Name1: "v1", Mean1: 0, StdDev1: 1,
		Name2: "v2", Mean2: 0, StdDev2: 1,
		Correlation: 0.8,
	}

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := rs.Column("v1")
	b, _ := rs.Column("v2")
	r := pearson(a, b)
	if math.Abs(r-0.8) > 0.02 {
		t.Fatalf("measured correlation %.4f, expected 0.8 +/- 0.02", r)
	}
}

func TestGenerateExtremeCorrelationsAccepted(t *testing.T) {
	for _, rho := range []float64{1.0, -1.0} {
		cfg := DefaultConfig()
		cfg.SampleCount = 1000
		cfg.Correlated = &CorrelatedPair{
			Name1: "v1", Mean1: 0, StdDev1: 1,
			Name2: "v2", Mean2: 0, StdDev2: 1,
			Correlation: rho,
		}

		rs, err := Generate(cfg)
		if err != nil {
			t.Fatalf("rho=%v: unexpected error: %v", rho, err)
		}

		a, _ := rs.Column("v1")
		b, _ := rs.Column("v2")
		r := pearson(a, b)
		if math.Abs(r-rho) > 1e-9 {
			t.Fatalf("rho=%v: measured correlation %v", rho, r)
		}
	}
}

func TestGenerateMarginalMoments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 100000

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weight, _ := rs.Column(FieldWeight)
	m, s := moments(weight)
	if math.Abs(m-70) > 0.2 {
		t.Fatalf("weight mean %.4f, expected 70 +/- 0.2", m)
	}
	if math.Abs(s-15) > 0.2 {
		t.Fatalf("weight std %.4f, expected 15 +/- 0.2", s)
	}

	// Gamma(2, 5): mean 10, std 5*sqrt(2).
	survival, _ := rs.Column(FieldSurvivalTime)
	m, s = moments(survival)
	if math.Abs(m-10) > 0.2 {
		t.Fatalf("survival mean %.4f, expected 10 +/- 0.2", m)
	}
	if math.Abs(s-5*math.Sqrt2) > 0.2 {
		t.Fatalf("survival std %.4f, expected %.4f +/- 0.2", s, 5*math.Sqrt2)
	}
}

func TestGeneratePrevalenceConverges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 100000
	cfg.Comorbidities = []Comorbidity{
		{Name: "diabetes", Prevalence: 0.2},
		{Name: "hypertension", Prevalence: 0.3},
	}

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, cm := range cfg.Comorbidities {
		col, _ := rs.Column(cm.Name)
		var sum float64
		for _, v := range col {
			sum += v
		}
		observed := sum / float64(len(col))
		if math.Abs(observed-cm.Prevalence) > 0.01 {
			t.Fatalf("%s prevalence %.4f, expected %.2f +/- 0.01", cm.Name, observed, cm.Prevalence)
		}
	}
}

func TestGenerateAgeIsWholeNumber(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCount = 1000

	rs, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ages, _ := rs.Column(FieldAge)
	for i, v := range ages {
		if v != math.Trunc(v) {
			t.Fatalf("age[%d] = %v, expected a whole number", i, v)
		}
	}
}

func pearson(a, b []float64) float64 {
	ma, sa := moments(a)
	mb, sb := moments(b)
	var cov float64
	for i := range a {
		cov += (a[i] - ma) * (b[i] - mb)
	}
	cov /= float64(len(a) - 1)
	return cov / (sa * sb)
}

func moments(values []float64) (mean, std float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / float64(len(values)-1))
	return mean, std
}
