package models

import (
	"time"

	"github.com/synthetica-health/platform/pkg/analysis"
	"github.com/synthetica-health/platform/pkg/synth"
)

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // dataset.generated, dataset.failed
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// GaussianOverride overrides one Gaussian field's parameters.
type GaussianOverride struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
}

// GammaOverride overrides one Gamma field's parameters.
type GammaOverride struct {
	Shape float64 `json:"shape"`
	Scale float64 `json:"scale"`
}

// CorrelatedVariable is one half of a requested correlated pair.
type CorrelatedVariable struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
}

// CorrelatedSpec requests a correlated pair in place of age/weight.
type CorrelatedSpec struct {
	Var1        CorrelatedVariable `json:"var1"`
	Var2        CorrelatedVariable `json:"var2"`
	Correlation float64            `json:"correlation"`
}

// ComorbiditySpec is a named prevalence entry in a generation request.
type ComorbiditySpec struct {
	Name       string  `json:"name"`
	Prevalence float64 `json:"prevalence"`
}

// GenerateRequest is the API payload for dataset generation. Optional
// fields are pointers: nil means "use the profile or default value".
type GenerateRequest struct {
	Name             string            `json:"name,omitempty"`
	Profile          string            `json:"profile,omitempty"`
	Samples          *int              `json:"samples,omitempty"`
	Seed             *int64            `json:"seed,omitempty"`
	Age              *GaussianOverride `json:"age,omitempty"`
	Weight           *GaussianOverride `json:"weight,omitempty"`
	LengthOfStay     *GammaOverride    `json:"length_of_stay,omitempty"`
	Survival         *GammaOverride    `json:"survival,omitempty"`
	EventProbability *float64          `json:"event_probability,omitempty"`
	Comorbidities    []ComorbiditySpec `json:"comorbidities,omitempty"`
	Correlated       *CorrelatedSpec   `json:"correlated,omitempty"`
}

// Apply overlays the request's explicit overrides onto a base config.
func (r GenerateRequest) Apply(cfg synth.GenerationConfig) synth.GenerationConfig {
	if r.Samples != nil {
		cfg.SampleCount = *r.Samples
	}
	if r.Seed != nil {
		cfg.Seed = *r.Seed
	}
	if r.Age != nil {
		cfg.Age = synth.GaussianParams{Mean: r.Age.Mean, StdDev: r.Age.StdDev}
	}
	if r.Weight != nil {
		cfg.Weight = synth.GaussianParams{Mean: r.Weight.Mean, StdDev: r.Weight.StdDev}
	}
	if r.LengthOfStay != nil {
		cfg.LengthOfStay = synth.GammaParams{Shape: r.LengthOfStay.Shape, Scale: r.LengthOfStay.Scale}
	}
	if r.Survival != nil {
		cfg.Survival = synth.GammaParams{Shape: r.Survival.Shape, Scale: r.Survival.Scale}
	}
	if r.EventProbability != nil {
		cfg.EventProbability = *r.EventProbability
	}
	if len(r.Comorbidities) > 0 {
		cfg.Comorbidities = nil
		for _, cm := range r.Comorbidities {
			cfg.Comorbidities = append(cfg.Comorbidities, synth.Comorbidity{Name: cm.Name, Prevalence: cm.Prevalence})
		}
	}
	if r.Correlated != nil {
		cfg.Correlated = &synth.CorrelatedPair{
			Name1:       r.Correlated.Var1.Name,
			Mean1:       r.Correlated.Var1.Mean,
			StdDev1:     r.Correlated.Var1.StdDev,
			Name2:       r.Correlated.Var2.Name,
			Mean2:       r.Correlated.Var2.Mean,
			StdDev2:     r.Correlated.Var2.StdDev,
			Correlation: r.Correlated.Correlation,
		}
	}
	return cfg
}

// GenerateResponse acknowledges a stored dataset.
type GenerateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RowCount  int       `json:"row_count"`
	Path      string    `json:"path"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// DatasetStats is the stats API response: per-column summaries plus the
// Pearson matrix over numeric columns.
type DatasetStats struct {
	DatasetID   string                     `json:"dataset_id"`
	RowCount    int                        `json:"row_count"`
	Columns     []analysis.ColumnStats     `json:"columns"`
	Correlation analysis.CorrelationMatrix `json:"correlation"`
	Query       string                     `json:"query,omitempty"`
}
