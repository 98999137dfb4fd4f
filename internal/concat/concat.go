package concat

import (
	"log/slog"
	"strings"

	"cprices/internal/report"
	"cprices/pkg/dataset"
)

// Key is the ordered tuple of scalar tag values identifying one input
// table within a batch, e.g. ("web_scraped", "retailer_a").
type Key []any

// KeyOf builds a Key from scalar parts.
func KeyOf(parts ...any) Key { return Key(parts) }

// Label renders the key as a "/"-joined path, used in diagnostics and for
// mapping lookups.
func (k Key) Label() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = dataset.FormatValue(p, dataset.String)
	}
	return strings.Join(parts, "/")
}

// Frames is the input batch: either an ordered sequence of tables (see
// Tables) or a name-keyed mapping (see Mapping). The closed union replaces
// the runtime type probing of argument kinds with a decision made at the
// call boundary.
type Frames interface {
	sealed()
}

type tableSeq struct {
	tables []*dataset.Table
}

type tableMap struct {
	entries map[string]*dataset.Table
}

func (tableSeq) sealed() {}
func (tableMap) sealed() {}

// Tables wraps an ordered sequence of tables. Provenance keys must be
// supplied with WithKeys, one per table in the same order.
func Tables(tables ...*dataset.Table) Frames {
	return tableSeq{tables: tables}
}

// Mapping wraps a name-keyed collection of tables. Without WithKeys the
// sorted map keys become the provenance keys, split on "/" into parts.
// With WithKeys, the keys both select and order the subset of entries to
// use, matched against the map keys by their Label.
func Mapping(entries map[string]*dataset.Table) Frames {
	return tableMap{entries: entries}
}

// Option configures a Concat call.
type Option func(*options)

type options struct {
	keys     []Key
	reporter report.Reporter
	logger   *slog.Logger
}

// WithKeys supplies explicit provenance keys. Required for sequence input;
// optional for mapping input, where it selects and orders a subset.
func WithKeys(keys ...Key) Option {
	return func(o *options) { o.keys = keys }
}

// WithReporter routes schema-mismatch diagnostics to the given reporter
// instead of the default slog-backed one.
func WithReporter(r report.Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// WithLogger sets the logger used for engine progress logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Concat combines the given tables into one unified table with a tag
// column per tag name, populated from each table's provenance key. Column
// schemas that differ across tables are reconciled with the fixed type
// promotion policy; irreconcilable conflicts fail before any combination
// is attempted. See the package documentation for the full contract.
func Concat(frames Frames, tagNames []string, opts ...Option) (*dataset.Table, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = report.NewSlogReporter(o.logger)
	}

	batch, err := normalize(frames, tagNames, o.keys)
	if err != nil {
		return nil, err
	}

	summary := summarize(batch)
	resolved := make(map[string]dataset.Type, len(summary.order))

	if summary.consistent {
		o.logger.Debug("input schemas are consistent, skipping reconciliation",
			slog.Int("tables", len(batch)),
			slog.Int("columns", len(summary.order)))
		for name, types := range summary.types {
			resolved[name] = types[0]
		}
	} else {
		conflicted := summary.conflicted()
		o.reporter.SchemaMismatch(diagnostic(batch, conflicted))

		for _, name := range summary.order {
			types := summary.types[name]
			target, err := resolve(name, types)
			if err != nil {
				return nil, err
			}
			resolved[name] = target
		}
	}

	return assemble(batch, tagNames, resolved, summary.order)
}
