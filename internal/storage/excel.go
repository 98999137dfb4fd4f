package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"cprices/pkg/dataset"
)

// ReadWorkbook reads a scanner extract workbook into a table. Columns are
// matched by header name on the first sheet's first row, never by
// position; extract layouts shift between deliveries. When declared is
// non-empty only those columns are read, with their declared types; an
// empty declared map reads every column as string.
func ReadWorkbook(path string, declared map[string]dataset.Type) (*dataset.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	header := rows[0]
	position := make(map[string]int, len(header))
	for j, cell := range header {
		position[strings.TrimSpace(cell)] = j
	}

	var fields dataset.Schema
	if len(declared) > 0 {
		names := make([]string, 0, len(declared))
		for name := range declared {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, ok := position[name]; !ok {
				return nil, fmt.Errorf("workbook %s has no column %q", path, name)
			}
			fields = append(fields, dataset.Field{Name: name, Type: declared[name]})
		}
	} else {
		for _, cell := range header {
			name := strings.TrimSpace(cell)
			if name == "" {
				continue
			}
			fields = append(fields, dataset.Field{Name: name, Type: dataset.String})
		}
	}

	columns := make([]dataset.Column, len(fields))
	for j, field := range fields {
		pos := position[field.Name]
		values := make([]any, len(rows)-1)
		for i, row := range rows[1:] {
			if pos >= len(row) {
				// Ragged row; excelize trims trailing empty cells.
				continue
			}
			v, err := parseCell(row[pos], field.Type)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i+2, field.Name, err)
			}
			values[i] = v
		}
		columns[j] = dataset.Column{Field: field, Values: values}
	}
	return dataset.New(columns...)
}
