// Package profile loads named cohort parameter presets from YAML. A
// profile bundles the distribution parameters and comorbidity prevalences
// for one study population so callers do not have to restate them per
// request.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/synthetica-health/platform/pkg/synth"
)

// Gaussian mirrors synth.GaussianParams with YAML tags.
type Gaussian struct {
	Mean   float64 `yaml:"mean" json:"mean"`
	StdDev float64 `yaml:"std" json:"std"`
}

// Gamma mirrors synth.GammaParams with YAML tags.
type Gamma struct {
	Shape float64 `yaml:"shape" json:"shape"`
	Scale float64 `yaml:"scale" json:"scale"`
}

// Comorbidity is a named prevalence entry.
type Comorbidity struct {
	Name       string  `yaml:"name" json:"name"`
	Prevalence float64 `yaml:"prevalence" json:"prevalence"`
}

// Profile is one cohort preset.
type Profile struct {
	Description      string        `yaml:"description" json:"description"`
	Age              Gaussian      `yaml:"age" json:"age"`
	Weight           Gaussian      `yaml:"weight" json:"weight"`
	LengthOfStay     Gamma         `yaml:"length_of_stay" json:"length_of_stay"`
	Survival         Gamma         `yaml:"survival" json:"survival"`
	EventProbability float64       `yaml:"event_probability" json:"event_probability"`
	Comorbidities    []Comorbidity `yaml:"comorbidities" json:"comorbidities"`
}

// Library is a set of named profiles.
type Library struct {
	Profiles map[string]Profile `yaml:"profiles" json:"profiles"`
}

// Load reads a profile library from a YAML file. An empty path yields the
// built-in defaults. Any failure (missing file, malformed YAML, empty
// library) also returns the built-ins alongside the error, so callers can
// log the fallback and keep working against a usable library.
func Load(path string) (Library, error) {
	if path == "" {
		return DefaultLibrary(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultLibrary(), err
	}
	var lib Library
	if err := yaml.Unmarshal(content, &lib); err != nil {
		return DefaultLibrary(), err
	}
	if len(lib.Profiles) == 0 {
		return DefaultLibrary(), fmt.Errorf("profile library %s is empty", path)
	}
	return lib, nil
}

// Lookup finds a profile by name, case-insensitively.
func (l Library) Lookup(name string) (Profile, bool) {
	if l.Profiles == nil {
		return Profile{}, false
	}
	if p, ok := l.Profiles[strings.ToLower(name)]; ok {
		return p, true
	}
	for k, p := range l.Profiles {
		if strings.EqualFold(k, name) {
			return p, true
		}
	}
	return Profile{}, false
}

// Names returns the available profile names.
func (l Library) Names() []string {
	names := make([]string, 0, len(l.Profiles))
	for k := range l.Profiles {
		names = append(names, k)
	}
	return names
}

// ToConfig builds a GenerationConfig from the profile with the given
// sample count and seed.
func (p Profile) ToConfig(samples int, seed int64) synth.GenerationConfig {
	cfg := synth.GenerationConfig{
		SampleCount:      samples,
		Age:              synth.GaussianParams{Mean: p.Age.Mean, StdDev: p.Age.StdDev},
		Weight:           synth.GaussianParams{Mean: p.Weight.Mean, StdDev: p.Weight.StdDev},
		LengthOfStay:     synth.GammaParams{Shape: p.LengthOfStay.Shape, Scale: p.LengthOfStay.Scale},
		Survival:         synth.GammaParams{Shape: p.Survival.Shape, Scale: p.Survival.Scale},
		EventProbability: p.EventProbability,
		Seed:             seed,
	}
	for _, cm := range p.Comorbidities {
		cfg.Comorbidities = append(cfg.Comorbidities, synth.Comorbidity{Name: cm.Name, Prevalence: cm.Prevalence})
	}
	return cfg
}

// DefaultLibrary returns the built-in presets.
func DefaultLibrary() Library {
	return Library{Profiles: map[string]Profile{
		"general-medicine": {
			Description:      "General medical cohort with the historical default parameters",
			Age:              Gaussian{Mean: 60, StdDev: 10},
			Weight:           Gaussian{Mean: 70, StdDev: 15},
			LengthOfStay:     Gamma{Shape: 2.0, Scale: 2.0},
			Survival:         Gamma{Shape: 2.0, Scale: 5.0},
			EventProbability: synth.DefaultEventProbability,
			Comorbidities: []Comorbidity{
				{Name: "diabetes", Prevalence: 0.2},
				{Name: "hypertension", Prevalence: 0.3},
				{Name: "cancer", Prevalence: 0.05},
			},
		},
		"icu": {
			Description:      "Critical-care cohort: longer stays, higher event rate",
			Age:              Gaussian{Mean: 65, StdDev: 12},
			Weight:           Gaussian{Mean: 72, StdDev: 16},
			LengthOfStay:     Gamma{Shape: 3.0, Scale: 3.0},
			Survival:         Gamma{Shape: 1.5, Scale: 4.0},
			EventProbability: 0.45,
			Comorbidities: []Comorbidity{
				{Name: "diabetes", Prevalence: 0.25},
				{Name: "hypertension", Prevalence: 0.4},
				{Name: "renal_failure", Prevalence: 0.15},
			},
		},
	}}
}
