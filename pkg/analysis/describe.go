// Package analysis computes descriptive statistics over synthetic record
// sets: per-column summaries, Pearson correlation matrices, and histogram
// bins for exploratory inspection.
package analysis

import (
	"math"
	"sort"

	"github.com/synthetica-health/platform/pkg/synth"
)

// ColumnStats is a describe-style summary of one numeric column.
type ColumnStats struct {
	Field  string  `json:"field"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe summarizes every column of the record set in field order.
// Empty record sets yield zero-count summaries.
func Describe(rs *synth.RecordSet) []ColumnStats {
	fields := rs.Fields()
	out := make([]ColumnStats, 0, len(fields))
	for _, f := range fields {
		values, _ := rs.Column(f.Name)
		out = append(out, describeColumn(f.Name, values))
	}
	return out
}

func describeColumn(name string, values []float64) ColumnStats {
	stats := ColumnStats{Field: name, Count: len(values)}
	if len(values) == 0 {
		return stats
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats.Mean, stats.StdDev = meanStd(values)
	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Q25 = quantile(sorted, 0.25)
	stats.Median = quantile(sorted, 0.5)
	stats.Q75 = quantile(sorted, 0.75)
	return stats
}

// meanStd returns the mean and sample standard deviation.
func meanStd(values []float64) (float64, float64) {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / float64(len(values)-1))
}

// quantile interpolates linearly between order statistics on an already
// sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
