// Package concat implements the schema-reconciling concatenation engine
// that combines independently sourced tables into one unified table with
// per-row provenance.
//
// # Overview
//
// The engine runs four stages over the input batch:
//
//  1. Normalize: accept either an ordered table sequence with explicit
//     provenance keys, or a name-keyed mapping (keys default to the map's
//     own keys); validate arity and non-emptiness.
//  2. Compare: collect each table's (name, type) schema and the union
//     schema in first-seen order; when every column name has a single type
//     the reconciliation stages are skipped entirely.
//  3. Resolve: for each conflicted column name, pick one target type using
//     the fixed numeric widening order, with string dominating any numeric
//     type. Any other mix fails; the engine never guesses.
//  4. Assemble: prepend the tag columns from each table's key, align every
//     table to the resolved union schema (casting present columns,
//     null-filling absent ones), and union everything by column name.
//
// # Usage
//
// Sequence input with explicit keys:
//
//	unified, err := concat.Concat(
//	    concat.Tables(scannerTable, webTable),
//	    []string{"data_source", "supplier"},
//	    concat.WithKeys(concat.KeyOf("scanner", "retailer_a"), concat.KeyOf("web_scraped", "retailer_b")),
//	)
//
// Mapping input, keys defaulting to the sorted map keys (multi-part keys
// use "/" separated map keys, matching the staged-data layout):
//
//	unified, err := concat.Concat(concat.Mapping(staged), []string{"data_source", "supplier"})
//
// # Failure contract
//
// All failures surface synchronously before any combination happens; there
// is no partial output. A resolvable schema mismatch is not a failure: a
// structured diagnostic goes to the configured reporter and the engine
// continues. Inputs are never mutated; every transformation allocates.
package concat
