package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/synthetica-health/platform/pkg/synth"
)

func TestDefaultLibraryLookup(t *testing.T) {
	lib := DefaultLibrary()

	p, ok := lib.Lookup("general-medicine")
	if !ok {
		t.Fatal("expected general-medicine profile")
	}
	if p.Age.Mean != 60 || p.EventProbability != synth.DefaultEventProbability {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	if _, ok := lib.Lookup("General-Medicine"); !ok {
		t.Fatal("lookup should be case-insensitive")
	}
	if _, ok := lib.Lookup("unknown"); ok {
		t.Fatal("unexpected profile match")
	}
}

func TestProfileToConfigGenerates(t *testing.T) {
	p, _ := DefaultLibrary().Lookup("icu")
	cfg := p.ToConfig(25, 7)

	rs, err := synth.Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Len() != 25 {
		t.Fatalf("expected 25 rows, got %d", rs.Len())
	}
	if _, ok := rs.Column("renal_failure"); !ok {
		t.Fatal("expected profile comorbidity column")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
profiles:
  oncology:
    description: oncology ward
    age: {mean: 62, std: 9}
    weight: {mean: 68, std: 14}
    length_of_stay: {shape: 2.5, scale: 2.0}
    survival: {shape: 1.8, scale: 6.0}
    event_probability: 0.5
    comorbidities:
      - {name: cancer, prevalence: 1.0}
      - {name: anemia, prevalence: 0.3}
`
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp profile: %v", err)
	}

	lib, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := lib.Lookup("oncology")
	if !ok {
		t.Fatal("expected oncology profile")
	}
	if p.Survival.Scale != 6.0 || len(p.Comorbidities) != 2 {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	lib, err := Load("/nonexistent/profiles.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, ok := lib.Lookup("general-medicine"); !ok {
		t.Fatal("expected default library fallback")
	}
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte("just a scalar, not a library"), 0o600); err != nil {
		t.Fatalf("write temp profile: %v", err)
	}

	lib, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed library")
	}
	if _, ok := lib.Lookup("general-medicine"); !ok {
		t.Fatal("expected default library fallback")
	}
}

func TestLoadEmptyLibraryFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte("profiles: {}\n"), 0o600); err != nil {
		t.Fatalf("write temp profile: %v", err)
	}

	lib, err := Load(path)
	if err == nil {
		t.Fatal("expected error for empty library")
	}
	if _, ok := lib.Lookup("icu"); !ok {
		t.Fatal("expected default library fallback")
	}
}
