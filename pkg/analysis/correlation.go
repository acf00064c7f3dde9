package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/synthetica-health/platform/pkg/synth"
)

// CorrelationMatrix holds pairwise Pearson coefficients for the listed
// fields; Values[i][j] correlates Fields[i] with Fields[j].
type CorrelationMatrix struct {
	Fields []string    `json:"fields"`
	Values [][]float64 `json:"values"`
}

// MarshalJSON encodes undefined cells (NaN, from empty or zero-variance
// columns) as null. encoding/json rejects NaN outright, and a single
// constant column must not make the whole matrix unserializable.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	rows := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		rows[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			cell := v
			rows[i][j] = &cell
		}
	}
	return json.Marshal(struct {
		Fields []string     `json:"fields"`
		Values [][]*float64 `json:"values"`
	}{m.Fields, rows})
}

// UnmarshalJSON restores null cells as NaN.
func (m *CorrelationMatrix) UnmarshalJSON(data []byte) error {
	var aux struct {
		Fields []string     `json:"fields"`
		Values [][]*float64 `json:"values"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Fields = aux.Fields
	m.Values = make([][]float64, len(aux.Values))
	for i, row := range aux.Values {
		m.Values[i] = make([]float64, len(row))
		for j, cell := range row {
			if cell == nil {
				m.Values[i][j] = math.NaN()
			} else {
				m.Values[i][j] = *cell
			}
		}
	}
	return nil
}

// Correlate computes the Pearson matrix over the named fields, or over
// every field when names is empty. A column with zero variance yields NaN
// against other columns, mirroring the usual convention.
func Correlate(rs *synth.RecordSet, names []string) (CorrelationMatrix, error) {
	if len(names) == 0 {
		for _, f := range rs.Fields() {
			names = append(names, f.Name)
		}
	}

	columns := make([][]float64, len(names))
	for i, name := range names {
		col, ok := rs.Column(name)
		if !ok {
			return CorrelationMatrix{}, fmt.Errorf("unknown field %q", name)
		}
		columns[i] = col
	}

	matrix := CorrelationMatrix{Fields: names, Values: make([][]float64, len(names))}
	for i := range names {
		matrix.Values[i] = make([]float64, len(names))
		for j := range names {
			if j < i {
				matrix.Values[i][j] = matrix.Values[j][i]
				continue
			}
			if j == i {
				matrix.Values[i][j] = 1
				continue
			}
			matrix.Values[i][j] = Pearson(columns[i], columns[j])
		}
	}
	return matrix, nil
}

// Pearson returns the linear correlation coefficient of two equal-length
// sequences.
func Pearson(a, b []float64) float64 {
	if len(a) < 2 {
		return math.NaN()
	}
	meanA, stdA := meanStd(a)
	meanB, stdB := meanStd(b)

	var cov float64
	for i := range a {
		cov += (a[i] - meanA) * (b[i] - meanB)
	}
	cov /= float64(len(a) - 1)
	return cov / (stdA * stdB)
}
