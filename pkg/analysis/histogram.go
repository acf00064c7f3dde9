package analysis

import "math"

// DefaultHistogramBins matches the bin count the inspection tooling has
// always used for exploratory plots.
const DefaultHistogramBins = 15

// Histogram is a fixed-width binning of one column.
type Histogram struct {
	Field  string    `json:"field"`
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// BuildHistogram bins values into the requested number of equal-width
// bins. Edges has one more entry than Counts. Invalid bin counts fall
// back to the default; empty input yields an empty histogram.
func BuildHistogram(field string, values []float64, bins int) Histogram {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	h := Histogram{Field: field}
	if len(values) == 0 {
		return h
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		// Degenerate column; a single bin holds everything.
		h.Edges = []float64{min, max}
		h.Counts = []int{len(values)}
		return h
	}

	width := (max - min) / float64(bins)
	h.Edges = make([]float64, bins+1)
	for i := range h.Edges {
		h.Edges[i] = min + float64(i)*width
	}
	h.Edges[bins] = max

	h.Counts = make([]int, bins)
	for _, v := range values {
		idx := int(math.Floor((v - min) / width))
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h
}
