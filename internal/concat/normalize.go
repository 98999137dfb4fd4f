package concat

import (
	"fmt"
	"sort"
	"strings"

	"cprices/internal/errors"
	"cprices/pkg/dataset"
)

// frame is one normalized (table, key) pair.
type frame struct {
	key   Key
	label string
	table *dataset.Table
}

// normalize validates the batch and flattens it into ordered (table, key)
// pairs. It is pure: no side effects beyond the returned slice.
func normalize(frames Frames, tagNames []string, keys []Key) ([]frame, error) {
	if len(tagNames) == 0 {
		return nil, errors.ArityMismatch("at least one tag-column name is required")
	}
	for i, name := range tagNames {
		if name == "" {
			return nil, errors.ArityMismatch(fmt.Sprintf("tag-column name %d is empty", i))
		}
	}

	var batch []frame
	switch f := frames.(type) {
	case tableSeq:
		if len(f.tables) == 0 {
			return nil, errors.EmptyInput()
		}
		if len(keys) != len(f.tables) {
			return nil, errors.ArityMismatch(fmt.Sprintf(
				"%d keys for %d tables; sequence input requires one key per table",
				len(keys), len(f.tables)))
		}
		for i, t := range f.tables {
			if t == nil {
				return nil, errors.UnsupportedInput(fmt.Sprintf("table %d is nil", i))
			}
			batch = append(batch, frame{key: keys[i], label: keys[i].Label(), table: t})
		}

	case tableMap:
		if len(f.entries) == 0 {
			return nil, errors.EmptyInput()
		}
		if keys == nil {
			names := make([]string, 0, len(f.entries))
			for name := range f.entries {
				names = append(names, name)
			}
			sort.Strings(names)
			keys = make([]Key, len(names))
			for i, name := range names {
				keys[i] = keyFromPath(name)
			}
		}
		for _, k := range keys {
			t, ok := f.entries[k.Label()]
			if !ok {
				return nil, errors.UnsupportedInput(fmt.Sprintf("no table for key %q", k.Label()))
			}
			if t == nil {
				return nil, errors.UnsupportedInput(fmt.Sprintf("table for key %q is nil", k.Label()))
			}
			batch = append(batch, frame{key: k, label: k.Label(), table: t})
		}

	case nil:
		return nil, errors.UnsupportedInput("nil input; pass Tables(...) or Mapping(...)")
	default:
		return nil, errors.UnsupportedInput(fmt.Sprintf("unrecognized input type %T", frames))
	}

	if err := checkKeys(batch, tagNames); err != nil {
		return nil, err
	}
	return batch, nil
}

// checkKeys enforces equal key arity matching the tag-name count, literal
// key parts, and consistent literal types per tag position across the
// batch.
func checkKeys(batch []frame, tagNames []string) error {
	tagTypes := make([]dataset.Type, len(tagNames))

	for _, fr := range batch {
		if len(fr.key) != len(tagNames) {
			return errors.ArityMismatch(fmt.Sprintf(
				"key %q has %d parts, expected %d (one per tag-column name)",
				fr.label, len(fr.key), len(tagNames)))
		}
		for i, part := range fr.key {
			t, ok := dataset.InferLiteralType(part)
			if !ok {
				return errors.UnsupportedInput(fmt.Sprintf(
					"key %q part %d (%T) is not a scalar tag value", fr.label, i, part))
			}
			if tagTypes[i] == dataset.Invalid {
				tagTypes[i] = t
			} else if tagTypes[i] != t {
				return errors.UnsupportedInput(fmt.Sprintf(
					"tag %q has mixed literal types %s and %s across keys",
					tagNames[i], tagTypes[i], t))
			}
		}

		schema := fr.table.Schema()
		for _, name := range tagNames {
			if schema.FieldIndex(name) >= 0 {
				return errors.UnsupportedInput(fmt.Sprintf(
					"tag-column name %q collides with a column of table %q", name, fr.label))
			}
		}
	}
	return nil
}

// keyFromPath splits a "/"-separated mapping key into its parts, matching
// the staged-data directory layout (source/supplier[/item]).
func keyFromPath(path string) Key {
	parts := strings.Split(path, "/")
	key := make(Key, len(parts))
	for i, p := range parts {
		key[i] = p
	}
	return key
}
