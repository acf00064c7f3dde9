package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/synthetica-health/platform/pkg/synth"
)

// WriteCSV serializes a record set as a comma-separated table with a
// header row of field names, one data row per record.
func WriteCSV(w io.Writer, rs *synth.RecordSet) error {
	writer := csv.NewWriter(w)

	fields := rs.Fields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	row := make([]string, len(fields))
	for i := 0; i < rs.Len(); i++ {
		for j, f := range fields {
			col, _ := rs.Column(f.Name)
			row[j] = formatValue(f.Kind, col[i])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatValue(kind synth.FieldKind, v float64) string {
	switch kind {
	case synth.KindInt, synth.KindFlag:
		return strconv.Itoa(int(v))
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// ReadCSV parses a table previously written by WriteCSV. Column kinds are
// inferred from the data: all-0/1 columns become flags, other all-integer
// columns become ints, everything else is real-valued. With no data rows
// every column is treated as real.
func ReadCSV(r io.Reader) (*synth.RecordSet, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv input has no header row")
	}

	header := rows[0]
	data := rows[1:]
	rs := synth.NewRecordSet(len(data))

	for j, name := range header {
		values := make([]float64, len(data))
		flag, whole := true, true
		for i, row := range data {
			if j >= len(row) {
				return nil, fmt.Errorf("row %d has %d columns, header has %d", i+1, len(row), len(header))
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("column %s row %d: %w", name, i+1, err)
			}
			values[i] = v
			if v != 0 && v != 1 {
				flag = false
			}
			if v != math.Trunc(v) {
				whole = false
			}
		}

		kind := synth.KindReal
		if len(data) > 0 {
			switch {
			case flag:
				kind = synth.KindFlag
			case whole:
				kind = synth.KindInt
			}
		}
		if err := rs.AddColumn(synth.Field{Name: name, Kind: kind}, values); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// DefaultFilename names an export after the generation date, matching the
// historical synthetic_medical_data_YYYYMMDD.csv convention.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("synthetic_medical_data_%s.csv", now.Format("20060102"))
}

// EnsureCSVExt appends .csv to a caller-supplied filename when missing.
func EnsureCSVExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return name
	}
	return name + ".csv"
}
