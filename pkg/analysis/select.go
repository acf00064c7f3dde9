package analysis

import (
	"fmt"

	"github.com/synthetica-health/platform/pkg/analysis/dsl"
	"github.com/synthetica-health/platform/pkg/synth"
)

// Select applies a parsed selection expression to a record set: rows are
// filtered by the where clauses, columns projected to the select list
// (all columns when empty), and the result truncated to the limit.
func Select(rs *synth.RecordSet, query dsl.Query) (*synth.RecordSet, error) {
	fields := rs.Fields()
	if len(query.SelectFields) > 0 {
		selected := make([]synth.Field, 0, len(query.SelectFields))
		for _, name := range query.SelectFields {
			var found bool
			for _, f := range fields {
				if f.Name == name {
					selected = append(selected, f)
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("unknown field %q", name)
			}
		}
		fields = selected
	}

	keep := make([]int, 0, rs.Len())
	for i := 0; i < rs.Len(); i++ {
		ok, err := query.Match(func(field string) (float64, bool) {
			col, present := rs.Column(field)
			if !present {
				return 0, false
			}
			return col[i], true
		})
		if err != nil {
			return nil, err
		}
		if ok {
			keep = append(keep, i)
		}
		if query.Limit > 0 && len(keep) == query.Limit {
			break
		}
	}

	out := synth.NewRecordSet(len(keep))
	for _, f := range fields {
		col, _ := rs.Column(f.Name)
		values := make([]float64, len(keep))
		for j, idx := range keep {
			values[j] = col[idx]
		}
		if err := out.AddColumn(f, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
