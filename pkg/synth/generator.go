package synth

import "math/rand"

// Generate synthesizes a record set from cfg. The configuration is
// validated before any randomness is consumed, so an error never leaves
// a partial table behind. Each call seeds its own random stream from
// cfg.Seed; two calls with identical configurations produce identical
// output.
//
// Column order: the correlated pair (or age, weight), length_of_stay,
// survival_time, event_occurred, then comorbidities in configured order.
func Generate(cfg GenerationConfig) (*RecordSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	n := cfg.SampleCount
	rs := NewRecordSet(n)

	if cfg.Correlated != nil {
		v1, v2 := correlatedPair(rng, n, *cfg.Correlated)
		mustAdd(rs, Field{Name: cfg.Correlated.Name1, Kind: KindReal}, v1)
		mustAdd(rs, Field{Name: cfg.Correlated.Name2, Kind: KindReal}, v2)
	} else {
		mustAdd(rs, Field{Name: FieldAge, Kind: KindInt}, sampleAges(rng, n, cfg.Age))
		mustAdd(rs, Field{Name: FieldWeight, Kind: KindReal}, sampleNormal(rng, n, cfg.Weight))
	}

	mustAdd(rs, Field{Name: FieldLengthOfStay, Kind: KindReal}, sampleGamma(rng, n, cfg.LengthOfStay))
	mustAdd(rs, Field{Name: FieldSurvivalTime, Kind: KindReal}, sampleGamma(rng, n, cfg.Survival))
	mustAdd(rs, Field{Name: FieldEventOccurred, Kind: KindFlag}, sampleBernoulli(rng, n, cfg.EventProbability))

	for _, cm := range cfg.Comorbidities {
		mustAdd(rs, Field{Name: cm.Name, Kind: KindFlag}, sampleBernoulli(rng, n, cm.Prevalence))
	}

	return rs, nil
}

// mustAdd panics on AddColumn failure. Validate has already rejected
// every collision AddColumn could report, so a failure here is a bug.
func mustAdd(rs *RecordSet, field Field, values []float64) {
	if err := rs.AddColumn(field, values); err != nil {
		panic(err)
	}
}
