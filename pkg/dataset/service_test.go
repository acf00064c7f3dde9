package dataset

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/synthetica-health/platform/pkg/synth"
)

func TestSummarizeEmptyDatasetSerializes(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleCount = 0

	rs, err := synth.Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := summarize("ds-empty", rs, "")
	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("stats for an empty dataset must serialize: %v", err)
	}
	if stats.RowCount != 0 || len(data) == 0 {
		t.Fatalf("unexpected summary %+v", stats)
	}
}

func TestSummarizeConstantColumnSerializes(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleCount = 20
	// Prevalence 1 is valid and produces an all-ones column with zero
	// variance.
	cfg.Comorbidities = []synth.Comorbidity{{Name: "copd", Prevalence: 1}}

	rs, err := synth.Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := summarize("ds-const", rs, "")
	if _, err := json.Marshal(stats); err != nil {
		t.Fatalf("stats with a constant column must serialize: %v", err)
	}
}

func TestApplyQueryWrapsCallerErrors(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleCount = 10

	rs, err := synth.Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := applyQuery(rs, "age > 40"); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for malformed expression, got %v", err)
	}
	if _, err := applyQuery(rs, "select no_such_field"); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for unknown field, got %v", err)
	}

	out, err := applyQuery(rs, "select age where age > 40 limit 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() > 3 {
		t.Fatalf("limit ignored, got %d rows", out.Len())
	}
	if len(out.Fields()) != 1 || out.Fields()[0].Name != "age" {
		t.Fatalf("unexpected projection %+v", out.Fields())
	}
}
