// Package dataset provides the in-memory table representation shared by the
// pipeline stages: ordered, named, typed columns with an explicit closed type
// system.
//
// # Types
//
// Every column carries a [Type] tag from a fixed enumeration. The numeric
// tags form a widening order (see [NumericLattice]) used by the
// concatenation engine to reconcile schema conflicts. Values are plain Go
// scalars chosen per tag:
//
//	Decimal, Double, Float  -> float64
//	Long, Int, Short, Byte  -> int64
//	String                  -> string
//	Boolean                 -> bool
//	Date, Timestamp         -> time.Time
//
// A nil value is a null cell. A column's type always comes from its
// [Field]; it is never probed from the values.
//
// # Tables
//
// A [Table] is an ordered sequence of equal-length columns with unique
// names. Tables are treated as immutable: transformations such as
// [Table.WithLiteral], [Column.Cast] and [Union] allocate new values and
// never modify their receiver.
package dataset
