package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field is a (name, type) pair describing one column.
type Field struct {
	Name string
	Type Type
}

func (f Field) String() string {
	return f.Name + ":" + f.Type.String()
}

// Schema is an ordered list of fields.
type Schema []Field

// FieldIndex returns the position of the named field, or -1.
func (s Schema) FieldIndex(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Equal reports whether both schemas have the same fields in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Column is a field plus its cell values. A nil value is a null cell.
type Column struct {
	Field  Field
	Values []any
}

// NewColumn builds a column after checking every non-null value matches the
// declared type's representation.
func NewColumn(name string, t Type, values []any) (Column, error) {
	for i, v := range values {
		if v == nil {
			continue
		}
		nv := normalizeLiteral(v)
		if !representationMatches(nv, t) {
			return Column{}, fmt.Errorf("column %q: value at row %d (%T) does not match declared type %s", name, i, v, t)
		}
		values[i] = nv
	}
	return Column{Field: Field{Name: name, Type: t}, Values: values}, nil
}

// NullColumn returns a column of n null cells with the given field.
func NullColumn(field Field, n int) Column {
	return Column{Field: field, Values: make([]any, n)}
}

// Len returns the number of cells.
func (c Column) Len() int { return len(c.Values) }

// Cast returns a copy of the column converted to the target type. Casting
// to the column's own type shares the backing values. Only numeric widening
// and conversion to String are supported; anything else is an error.
func (c Column) Cast(to Type) (Column, error) {
	if to == c.Field.Type {
		return Column{Field: Field{Name: c.Field.Name, Type: to}, Values: c.Values}, nil
	}
	if !castable(c.Field.Type, to) {
		return Column{}, fmt.Errorf("column %q: cannot cast %s to %s", c.Field.Name, c.Field.Type, to)
	}

	out := make([]any, len(c.Values))
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		out[i] = castValue(v, c.Field.Type, to)
	}
	return Column{Field: Field{Name: c.Field.Name, Type: to}, Values: out}, nil
}

func castable(from, to Type) bool {
	if to == String {
		return true
	}
	return from.IsNumeric() && to.IsNumeric()
}

func castValue(v any, from, to Type) any {
	if to == String {
		return FormatValue(v, from)
	}
	// Numeric to numeric. Integral widths share int64, fractional widths
	// share float64; only the int64 -> float64 move changes representation.
	switch x := v.(type) {
	case int64:
		if isFractional(to) {
			return float64(x)
		}
		return x
	case float64:
		return x
	default:
		return v
	}
}

func isFractional(t Type) bool {
	return t == Decimal || t == Double || t == Float
}

func representationMatches(v any, t Type) bool {
	switch t {
	case Decimal, Double, Float:
		_, ok := v.(float64)
		return ok
	case Long, Int, Short, Byte:
		_, ok := v.(int64)
		return ok
	case String:
		_, ok := v.(string)
		return ok
	case Boolean:
		_, ok := v.(bool)
		return ok
	case Date, Timestamp:
		_, ok := v.(time.Time)
		return ok
	default:
		return false
	}
}

// FormatValue renders a cell in its canonical text form, as used by the
// String cast and the CSV sink. Null cells render as the empty string.
func FormatValue(v any, t Type) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if t == Date {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
