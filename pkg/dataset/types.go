package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Type identifies the declared type of a column. The zero value is Invalid.
type Type int

const (
	Invalid Type = iota

	// Numeric types, widest first. Their relative order here is not
	// significant; widening is defined by NumericLattice.
	Decimal
	Double
	Float
	Long
	Int
	Short
	Byte

	String
	Boolean
	Date
	Timestamp
)

// NumericLattice is the fixed widening order among numeric types, widest
// first. It is the only precedence used to reconcile numeric schema
// conflicts and must not be mutated.
var NumericLattice = [...]Type{Decimal, Double, Float, Long, Int, Short, Byte}

var typeNames = map[Type]string{
	Decimal:   "decimal",
	Double:    "double",
	Float:     "float",
	Long:      "long",
	Int:       "int",
	Short:     "short",
	Byte:      "byte",
	String:    "string",
	Boolean:   "boolean",
	Date:      "date",
	Timestamp: "timestamp",
}

// String returns the lowercase name used in config files and CSV headers.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", int(t))
}

// IsNumeric reports whether t is a member of the numeric lattice.
func (t Type) IsNumeric() bool {
	for _, n := range NumericLattice {
		if t == n {
			return true
		}
	}
	return false
}

// ParseType converts a config-file type name to a Type. A handful of
// aliases from the upstream catalog naming are accepted.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "decimal":
		return Decimal, nil
	case "double":
		return Double, nil
	case "float":
		return Float, nil
	case "long", "bigint":
		return Long, nil
	case "int", "integer":
		return Int, nil
	case "short", "smallint":
		return Short, nil
	case "byte", "tinyint":
		return Byte, nil
	case "string":
		return String, nil
	case "boolean", "bool":
		return Boolean, nil
	case "date":
		return Date, nil
	case "timestamp":
		return Timestamp, nil
	default:
		return Invalid, fmt.Errorf("unknown column type %q", name)
	}
}

// InferLiteralType maps a Go scalar to its column type. It is used to type
// synthesized literal columns, e.g. provenance tags.
func InferLiteralType(v any) (Type, bool) {
	switch v.(type) {
	case string:
		return String, true
	case int, int32, int64:
		return Long, true
	case float32, float64:
		return Double, true
	case bool:
		return Boolean, true
	case time.Time:
		return Timestamp, true
	default:
		return Invalid, false
	}
}

// normalizeLiteral converts a Go scalar to the canonical representation for
// its inferred type.
func normalizeLiteral(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}
