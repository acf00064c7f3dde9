package analysis

import "testing"

func TestBuildHistogramBinning(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	h := BuildHistogram("v", values, 5)

	if len(h.Counts) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(h.Counts))
	}
	if len(h.Edges) != 6 {
		t.Fatalf("expected 6 edges, got %d", len(h.Edges))
	}

	var total int
	for _, c := range h.Counts {
		total += c
	}
	if total != len(values) {
		t.Fatalf("bin counts sum to %d, expected %d", total, len(values))
	}
	// Max value lands in the last bin, not past it.
	if h.Counts[4] != 2 {
		t.Fatalf("last bin count %d, expected 2", h.Counts[4])
	}
}

func TestBuildHistogramConstantColumn(t *testing.T) {
	h := BuildHistogram("flag", []float64{1, 1, 1}, 15)
	if len(h.Counts) != 1 || h.Counts[0] != 3 {
		t.Fatalf("expected single bin of 3, got %v", h.Counts)
	}
}

func TestBuildHistogramEmpty(t *testing.T) {
	h := BuildHistogram("v", nil, 15)
	if len(h.Counts) != 0 {
		t.Fatalf("expected empty histogram, got %v", h.Counts)
	}
}
