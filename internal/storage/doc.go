// Package storage implements the table source and sink collaborators at
// the edges of the concatenation engine.
//
// The source side loads the staged tables a scenario selects:
//
//   - web-scraped tables from <staged>/web_scraped/<supplier>/<item>.csv
//   - scanner extracts from the configured .xlsx workbook per supplier
//   - the fixed conventional historic table
//
// Each table comes back with its provenance key parts (source,
// supplier[, item]) so the engine can tag rows. Loads within a batch run
// concurrently; the first failure cancels the rest.
//
// The sink side writes the unified outputs under a fresh run id, one
// directory per run.
//
// CSV files carry their schema in the header: cells are "name:type", with
// bare "name" read back as string unless the scenario declares a type. An
// empty cell is a null.
package storage
