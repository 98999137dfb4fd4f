package dataset

import (
	"fmt"
)

// Table is an ordered sequence of equal-length, uniquely named columns.
type Table struct {
	columns []Column
	index   map[string]int
}

// New builds a table from the given columns. Column names must be unique
// and all columns must have the same length.
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c.Field.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, dup := t.index[c.Field.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Field.Name)
		}
		if i > 0 && c.Len() != columns[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Field.Name, c.Len(), columns[0].Len())
		}
		t.index[c.Field.Name] = i
	}
	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.columns) }

// Schema returns the ordered (name, type) pairs of the table.
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.columns))
	for i, c := range t.columns {
		s[i] = c.Field
	}
	return s
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Columns returns a copy of the column slice.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// WithLiteral returns a new table with a column of the given literal value
// prepended. The column type is inferred from the literal.
func (t *Table) WithLiteral(name string, value any) (*Table, error) {
	typ, ok := InferLiteralType(value)
	if !ok {
		return nil, fmt.Errorf("cannot infer a column type for literal %v (%T)", value, value)
	}
	lit := normalizeLiteral(value)
	values := make([]any, t.NumRows())
	for i := range values {
		values[i] = lit
	}
	col := Column{Field: Field{Name: name, Type: typ}, Values: values}
	return New(append([]Column{col}, t.columns...)...)
}

// WithColumn returns a new table with the column appended.
func (t *Table) WithColumn(col Column) (*Table, error) {
	if col.Len() != t.NumRows() && t.NumColumns() > 0 {
		return nil, fmt.Errorf("column %q has %d rows, table has %d", col.Field.Name, col.Len(), t.NumRows())
	}
	return New(append(t.Columns(), col)...)
}

// Select returns a new table containing the named columns in the given
// order.
func (t *Table) Select(names []string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column named %q", name)
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

// Union combines tables whose schemas are already identical, preserving
// row order: all rows of the first table, then the second, and so on. It
// is a building block for the concatenation engine, which aligns schemas
// before calling it.
func Union(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to union")
	}
	schema := tables[0].Schema()
	rows := 0
	for _, t := range tables {
		if !t.Schema().Equal(schema) {
			return nil, fmt.Errorf("schema mismatch in union: %s vs %s", schema, t.Schema())
		}
		rows += t.NumRows()
	}

	cols := make([]Column, len(schema))
	for j, f := range schema {
		values := make([]any, 0, rows)
		for _, t := range tables {
			values = append(values, t.columns[j].Values...)
		}
		cols[j] = Column{Field: f, Values: values}
	}
	return New(cols...)
}
