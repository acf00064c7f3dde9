package analysis

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestPearsonPerfectCorrelation(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}

	if r := Pearson(a, b); math.Abs(r-1) > 1e-12 {
		t.Fatalf("expected correlation 1, got %v", r)
	}

	inv := []float64{10, 8, 6, 4, 2}
	if r := Pearson(a, inv); math.Abs(r+1) > 1e-12 {
		t.Fatalf("expected correlation -1, got %v", r)
	}
}

func TestCorrelateMatrixShape(t *testing.T) {
	rs := buildRecordSet(t, map[string][]float64{
		"a": {1, 2, 3, 4},
		"b": {4, 3, 2, 1},
		"c": {1, 3, 2, 4},
	}, []string{"a", "b", "c"})

	matrix, err := Correlate(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matrix.Fields) != 3 || len(matrix.Values) != 3 {
		t.Fatalf("expected 3x3 matrix, got %dx%d", len(matrix.Fields), len(matrix.Values))
	}
	for i := range matrix.Values {
		if matrix.Values[i][i] != 1 {
			t.Fatalf("diagonal [%d][%d] = %v, expected 1", i, i, matrix.Values[i][i])
		}
		for j := range matrix.Values[i] {
			if matrix.Values[i][j] != matrix.Values[j][i] {
				t.Fatalf("matrix not symmetric at %d,%d", i, j)
			}
		}
	}
	if math.Abs(matrix.Values[0][1]+1) > 1e-12 {
		t.Fatalf("a/b correlation %v, expected -1", matrix.Values[0][1])
	}
}

func TestCorrelationMatrixJSONHandlesUndefinedCells(t *testing.T) {
	// A constant column has zero variance, so its off-diagonal
	// coefficients are NaN. The matrix must still serialize.
	rs := buildRecordSet(t, map[string][]float64{
		"a": {1, 2, 3, 4},
		"b": {5, 5, 5, 5},
	}, []string{"a", "b"})

	matrix, err := Correlate(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(matrix.Values[0][1]) {
		t.Fatalf("expected NaN for constant column, got %v", matrix.Values[0][1])
	}

	data, err := json.Marshal(matrix)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "null") {
		t.Fatalf("expected null cells in %s", data)
	}

	var decoded CorrelationMatrix
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !math.IsNaN(decoded.Values[0][1]) {
		t.Fatalf("expected NaN restored, got %v", decoded.Values[0][1])
	}
	if decoded.Values[0][0] != 1 || decoded.Values[1][1] != 1 {
		t.Fatalf("diagonal lost in round trip: %v", decoded.Values)
	}
}

func TestCorrelateEmptyRecordSetSerializes(t *testing.T) {
	rs := buildRecordSet(t, map[string][]float64{
		"a": {},
		"b": {},
	}, []string{"a", "b"})

	matrix, err := Correlate(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := json.Marshal(matrix); err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
}

func TestCorrelateUnknownField(t *testing.T) {
	rs := buildRecordSet(t, map[string][]float64{"a": {1, 2}}, []string{"a"})

	if _, err := Correlate(rs, []string{"a", "missing"}); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
