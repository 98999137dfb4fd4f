package concat

import (
	"cprices/internal/report"
	"cprices/pkg/dataset"
)

// schemaSummary is the union view of the batch's schemas.
type schemaSummary struct {
	// order holds the union column names in first-seen order across the
	// input sequence.
	order []string
	// types maps each column name to its distinct observed types, in
	// first-seen order.
	types map[string][]dataset.Type
	// consistent is true when every column name has exactly one observed
	// type, in which case reconciliation is skipped.
	consistent bool
}

// summarize extracts every table's schema and computes the union schema.
func summarize(batch []frame) *schemaSummary {
	s := &schemaSummary{
		types:      make(map[string][]dataset.Type),
		consistent: true,
	}
	for _, fr := range batch {
		for _, f := range fr.table.Schema() {
			seen, known := s.types[f.Name]
			if !known {
				s.order = append(s.order, f.Name)
				s.types[f.Name] = []dataset.Type{f.Type}
				continue
			}
			if !containsType(seen, f.Type) {
				s.types[f.Name] = append(seen, f.Type)
				s.consistent = false
			}
		}
	}
	return s
}

// conflicted returns the column names with more than one observed type, in
// union-schema order.
func (s *schemaSummary) conflicted() []string {
	var out []string
	for _, name := range s.order {
		if len(s.types[name]) > 1 {
			out = append(out, name)
		}
	}
	return out
}

// diagnostic builds the per-source view of the conflicted columns for the
// reporting sink.
func diagnostic(batch []frame, conflicted []string) *report.Diagnostic {
	d := &report.Diagnostic{
		Columns:  conflicted,
		Observed: make(map[string]map[string]string, len(batch)),
	}
	for _, fr := range batch {
		row := make(map[string]string)
		schema := fr.table.Schema()
		for _, name := range conflicted {
			if i := schema.FieldIndex(name); i >= 0 {
				row[name] = schema[i].Type.String()
			}
		}
		d.Observed[fr.label] = row
	}
	return d
}

func containsType(types []dataset.Type, t dataset.Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
