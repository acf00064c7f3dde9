package synth

import "fmt"

// FieldKind fixes how a column's float64 storage is interpreted and
// formatted on export.
type FieldKind int

const (
	// KindInt holds whole numbers (age).
	KindInt FieldKind = iota
	// KindReal holds continuous values.
	KindReal
	// KindFlag holds 0/1 indicators.
	KindFlag
)

// Field names and types a record-set column.
type Field struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`
}

// RecordSet is an ordered, fixed-width table of synthetic records.
// Columns preserve insertion order; every column has the same length.
type RecordSet struct {
	fields  []Field
	columns [][]float64
	length  int
}

// NewRecordSet returns an empty record set of the given row count.
func NewRecordSet(length int) *RecordSet {
	return &RecordSet{length: length}
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return rs.length
}

// Fields returns the column descriptors in output order.
func (rs *RecordSet) Fields() []Field {
	out := make([]Field, len(rs.fields))
	copy(out, rs.fields)
	return out
}

// AddColumn appends a named column. The column must match the record
// set's row count, and its name must be unique.
func (rs *RecordSet) AddColumn(field Field, values []float64) error {
	if len(values) != rs.length {
		return fmt.Errorf("column %s has %d values, record set has %d rows", field.Name, len(values), rs.length)
	}
	for _, f := range rs.fields {
		if f.Name == field.Name {
			return ConflictError{Name: field.Name, Reason: "column already present"}
		}
	}
	rs.fields = append(rs.fields, field)
	rs.columns = append(rs.columns, values)
	return nil
}

// Column returns the raw values for a field, or false when the field is
// not present. The returned slice is shared, not copied.
func (rs *RecordSet) Column(name string) ([]float64, bool) {
	for i, f := range rs.fields {
		if f.Name == name {
			return rs.columns[i], true
		}
	}
	return nil, false
}

// Row materializes row i as a field-name keyed map. Integer and flag
// columns surface as int values, real columns as float64.
func (rs *RecordSet) Row(i int) map[string]interface{} {
	row := make(map[string]interface{}, len(rs.fields))
	for j, f := range rs.fields {
		v := rs.columns[j][i]
		switch f.Kind {
		case KindInt, KindFlag:
			row[f.Name] = int(v)
		default:
			row[f.Name] = v
		}
	}
	return row
}
