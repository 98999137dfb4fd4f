// Package report carries schema-conflict diagnostics from the concatenation
// engine to a reporting sink. The diagnostic is advisory: it is emitted for
// human inspection when a resolvable schema mismatch is found, and the
// engine continues.
package report

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Diagnostic is a structured per-source view of conflicted columns: for
// each source, the type it declares for every column observed with more
// than one type across the batch.
type Diagnostic struct {
	// Columns are the conflicted column names, in union-schema order.
	Columns []string
	// Observed maps source label -> column name -> declared type name.
	// A source missing a column has no entry for it.
	Observed map[string]map[string]string
}

// Sources returns the source labels in sorted order.
func (d *Diagnostic) Sources() []string {
	out := make([]string, 0, len(d.Observed))
	for s := range d.Observed {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Render formats the diagnostic as an aligned text table with one row per
// source and one column per conflicted column name.
func (d *Diagnostic) Render() string {
	sources := d.Sources()

	widths := make([]int, len(d.Columns)+1)
	widths[0] = len("source")
	for _, s := range sources {
		if len(s) > widths[0] {
			widths[0] = len(s)
		}
	}
	for j, col := range d.Columns {
		widths[j+1] = len(col)
		for _, s := range sources {
			if t := d.Observed[s][col]; len(t) > widths[j+1] {
				widths[j+1] = len(t)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for j, cell := range cells {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[j], cell)
		}
		b.WriteString("\n")
	}

	writeRow(append([]string{"source"}, d.Columns...))
	for _, s := range sources {
		cells := make([]string, len(d.Columns)+1)
		cells[0] = s
		for j, col := range d.Columns {
			t, ok := d.Observed[s][col]
			if !ok {
				t = "-"
			}
			cells[j+1] = t
		}
		writeRow(cells)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Reporter receives schema-mismatch diagnostics.
type Reporter interface {
	SchemaMismatch(d *Diagnostic)
}

// SlogReporter logs diagnostics at warn level.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter creates a reporter backed by the given logger, falling
// back to slog.Default when nil.
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

// SchemaMismatch implements Reporter.
func (r *SlogReporter) SchemaMismatch(d *Diagnostic) {
	r.logger.Warn("input tables have mismatched schemas, reconciling",
		slog.Any("conflicted_columns", d.Columns),
		slog.String("observed", "\n"+d.Render()))
}
