// Package synth generates synthetic clinical cohort tables by sampling
// parametric distributions: Gaussian demographics, Gamma-distributed
// durations, and Bernoulli indicators for comorbidities and event
// occurrence. An optional correlated pair of Gaussian variables can be
// generated in place of the independent age/weight columns.
//
// Generation is deterministic for a given seed. Every call owns its own
// seeded random stream; the package keeps no global RNG state.
package synth

import "math"

// Reserved field names produced by the assembler. Comorbidity names must
// not collide with any of these.
const (
	FieldAge           = "age"
	FieldWeight        = "weight"
	FieldLengthOfStay  = "length_of_stay"
	FieldSurvivalTime  = "survival_time"
	FieldEventOccurred = "event_occurred"
)

// DefaultEventProbability is the probability that a record flags an
// observed event rather than a censored observation.
const DefaultEventProbability = 0.3

// GaussianParams parameterizes a normal distribution.
type GaussianParams struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
}

// GammaParams parameterizes a gamma distribution in shape/scale form.
type GammaParams struct {
	Shape float64 `json:"shape"`
	Scale float64 `json:"scale"`
}

// Comorbidity pairs an output field name with its population prevalence.
type Comorbidity struct {
	Name       string  `json:"name"`
	Prevalence float64 `json:"prevalence"`
}

// CorrelatedPair describes two Gaussian variables generated with a target
// Pearson correlation. When present the pair replaces the independent
// age and weight columns.
type CorrelatedPair struct {
	Name1       string  `json:"name1"`
	Mean1       float64 `json:"mean1"`
	StdDev1     float64 `json:"std1"`
	Name2       string  `json:"name2"`
	Mean2       float64 `json:"mean2"`
	StdDev2     float64 `json:"std2"`
	Correlation float64 `json:"correlation"`
}

// GenerationConfig is the immutable input to Generate.
type GenerationConfig struct {
	SampleCount      int             `json:"samples"`
	Age              GaussianParams  `json:"age"`
	Weight           GaussianParams  `json:"weight"`
	LengthOfStay     GammaParams     `json:"length_of_stay"`
	Survival         GammaParams     `json:"survival"`
	EventProbability float64         `json:"event_probability"`
	Comorbidities    []Comorbidity   `json:"comorbidities"`
	Correlated       *CorrelatedPair `json:"correlated,omitempty"`
	Seed             int64           `json:"seed"`
}

// DefaultConfig returns the generation parameters used when a caller does
// not override them.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		SampleCount:      1000,
		Age:              GaussianParams{Mean: 60, StdDev: 10},
		Weight:           GaussianParams{Mean: 70, StdDev: 15},
		LengthOfStay:     GammaParams{Shape: 2.0, Scale: 2.0},
		Survival:         GammaParams{Shape: 2.0, Scale: 5.0},
		EventProbability: DefaultEventProbability,
		Comorbidities: []Comorbidity{
			{Name: "diabetes", Prevalence: 0.2},
			{Name: "hypertension", Prevalence: 0.3},
			{Name: "cancer", Prevalence: 0.05},
		},
		Seed: 42,
	}
}

// Validate checks every parameter before any randomness is consumed.
// A sample count of zero is valid and yields an empty record set.
func (c GenerationConfig) Validate() error {
	if c.SampleCount < 0 {
		return InvalidParameterError{Field: "samples", Reason: "must not be negative"}
	}
	if c.EventProbability < 0 || c.EventProbability > 1 {
		return InvalidParameterError{Field: FieldEventOccurred, Reason: "probability must be in [0,1]"}
	}

	reserved := map[string]struct{}{
		FieldAge:           {},
		FieldWeight:        {},
		FieldLengthOfStay:  {},
		FieldSurvivalTime:  {},
		FieldEventOccurred: {},
	}

	if c.Correlated != nil {
		pair := c.Correlated
		if math.Abs(pair.Correlation) > 1 {
			return InvalidParameterError{Field: "correlation", Reason: "must be in [-1,1]"}
		}
		if pair.Name1 == "" || pair.Name2 == "" {
			return ConflictError{Name: "correlated pair", Reason: "both variables must be named"}
		}
		if pair.Name1 == pair.Name2 {
			return ConflictError{Name: pair.Name1, Reason: "correlated variables share a name"}
		}
		if pair.StdDev1 < 0 || pair.StdDev2 < 0 {
			return InvalidParameterError{Field: "correlated pair", Reason: "standard deviation must not be negative"}
		}
		for _, name := range []string{pair.Name1, pair.Name2} {
			if name == FieldLengthOfStay || name == FieldSurvivalTime || name == FieldEventOccurred {
				return ConflictError{Name: name, Reason: "collides with a reserved field"}
			}
		}
		// The pair substitutes for age/weight, so those two names are free.
	} else {
		if c.Age.StdDev < 0 {
			return InvalidParameterError{Field: FieldAge, Reason: "standard deviation must not be negative"}
		}
		if c.Weight.StdDev < 0 {
			return InvalidParameterError{Field: FieldWeight, Reason: "standard deviation must not be negative"}
		}
	}

	if err := validateGamma(FieldLengthOfStay, c.LengthOfStay); err != nil {
		return err
	}
	if err := validateGamma(FieldSurvivalTime, c.Survival); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Comorbidities))
	for _, cm := range c.Comorbidities {
		if cm.Name == "" {
			return ConflictError{Name: "(empty)", Reason: "comorbidity requires a name"}
		}
		if _, ok := reserved[cm.Name]; ok {
			return ConflictError{Name: cm.Name, Reason: "collides with a reserved field"}
		}
		if c.Correlated != nil && (cm.Name == c.Correlated.Name1 || cm.Name == c.Correlated.Name2) {
			return ConflictError{Name: cm.Name, Reason: "collides with a correlated-pair field"}
		}
		if _, ok := seen[cm.Name]; ok {
			return ConflictError{Name: cm.Name, Reason: "duplicate comorbidity"}
		}
		seen[cm.Name] = struct{}{}
		if cm.Prevalence < 0 || cm.Prevalence > 1 {
			return InvalidParameterError{Field: cm.Name, Reason: "prevalence must be in [0,1]"}
		}
	}

	return nil
}

func validateGamma(field string, p GammaParams) error {
	if p.Shape <= 0 {
		return InvalidParameterError{Field: field, Reason: "gamma shape must be positive"}
	}
	if p.Scale <= 0 {
		return InvalidParameterError{Field: field, Reason: "gamma scale must be positive"}
	}
	return nil
}
