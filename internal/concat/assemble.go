package concat

import (
	"cprices/internal/errors"
	"cprices/pkg/dataset"
)

// assemble tags every table with its provenance key, aligns it to the
// resolved union schema and unions the batch by column name. Output row
// order is the concatenation of per-table row order; output column order
// is the tag columns in caller order followed by the union columns in
// first-seen order.
func assemble(batch []frame, tagNames []string, resolved map[string]dataset.Type, order []string) (*dataset.Table, error) {
	finalOrder := make([]string, 0, len(tagNames)+len(order))
	finalOrder = append(finalOrder, tagNames...)
	finalOrder = append(finalOrder, order...)

	aligned := make([]*dataset.Table, 0, len(batch))
	for _, fr := range batch {
		cols := make([]dataset.Column, 0, len(order))
		for _, name := range order {
			target, ok := resolved[name]
			if !ok {
				return nil, errors.TypeMismatch(name)
			}
			c, present := fr.table.Column(name)
			if !present {
				cols = append(cols, dataset.NullColumn(dataset.Field{Name: name, Type: target}, fr.table.NumRows()))
				continue
			}
			cast, err := c.Cast(target)
			if err != nil {
				// The resolver only returns reachable targets, so a
				// failed cast here is an internal inconsistency.
				return nil, errors.NewWithDetails(errors.CodeTypeMismatch,
					"cast to resolved type failed", err.Error())
			}
			cols = append(cols, cast)
		}

		t, err := dataset.New(cols...)
		if err != nil {
			return nil, errors.NewWithDetails(errors.CodeTypeMismatch,
				"aligning table failed", err.Error())
		}
		// Prepend tag columns in reverse so the caller-supplied order is
		// preserved at the front of the table.
		for i := len(tagNames) - 1; i >= 0; i-- {
			t, err = t.WithLiteral(tagNames[i], fr.key[i])
			if err != nil {
				return nil, errors.UnsupportedInput(err.Error())
			}
		}
		t, err = t.Select(finalOrder)
		if err != nil {
			return nil, errors.NewWithDetails(errors.CodeTypeMismatch,
				"ordering output columns failed", err.Error())
		}
		aligned = append(aligned, t)
	}

	out, err := dataset.Union(aligned...)
	if err != nil {
		return nil, errors.NewWithDetails(errors.CodeTypeMismatch,
			"union of aligned tables failed", err.Error())
	}
	return out, nil
}
