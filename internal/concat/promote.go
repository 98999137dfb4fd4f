package concat

import (
	"cprices/internal/errors"
	"cprices/pkg/dataset"
)

// resolve picks the single target type for a column from its observed
// types, or fails. The policy is total over the closed type enum:
//
//   - all types numeric: the widest member of dataset.NumericLattice that
//     is present
//   - any type is string: string, the safe universal representation
//   - anything else (e.g. boolean vs date): unresolvable
//
// It is a pure function, called once per conflicted column name.
func resolve(column string, observed []dataset.Type) (dataset.Type, error) {
	if len(observed) == 1 {
		return observed[0], nil
	}

	allNumeric := true
	hasString := false
	for _, t := range observed {
		if !t.IsNumeric() {
			allNumeric = false
		}
		if t == dataset.String {
			hasString = true
		}
	}

	if allNumeric {
		for _, t := range dataset.NumericLattice {
			if containsType(observed, t) {
				return t, nil
			}
		}
	}
	if hasString {
		return dataset.String, nil
	}

	names := make([]string, len(observed))
	for i, t := range observed {
		names[i] = t.String()
	}
	return dataset.Invalid, errors.UnresolvableConflict(column, names)
}
