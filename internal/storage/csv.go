package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cprices/pkg/dataset"
)

// ReadCSV reads a staged CSV file into a table. Header cells may declare
// types as "name:type"; declared overrides them and types any bare
// headers, which otherwise default to string.
func ReadCSV(path string, declared map[string]dataset.Type) (*dataset.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()
	return readCSV(file, declared)
}

func readCSV(r io.Reader, declared map[string]dataset.Type) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header := records[0]
	fields := make(dataset.Schema, len(header))
	for j, cell := range header {
		name, typ, err := parseHeaderCell(cell)
		if err != nil {
			return nil, err
		}
		if override, ok := declared[name]; ok {
			typ = override
		}
		fields[j] = dataset.Field{Name: name, Type: typ}
	}

	columns := make([]dataset.Column, len(fields))
	for j, f := range fields {
		values := make([]any, len(records)-1)
		for i, record := range records[1:] {
			if j >= len(record) {
				continue
			}
			v, err := parseCell(record[j], f.Type)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i+1, f.Name, err)
			}
			values[i] = v
		}
		columns[j] = dataset.Column{Field: f, Values: values}
	}
	return dataset.New(columns...)
}

// WriteCSV writes a table with a typed header row.
func WriteCSV(w io.Writer, t *dataset.Table) error {
	writer := csv.NewWriter(w)

	schema := t.Schema()
	header := make([]string, len(schema))
	for j, f := range schema {
		header[j] = f.String()
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	columns := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		record := make([]string, len(columns))
		for j, c := range columns {
			record[j] = dataset.FormatValue(c.Values[i], c.Field.Type)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func parseHeaderCell(cell string) (string, dataset.Type, error) {
	name, typeName, hasType := strings.Cut(cell, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", dataset.Invalid, fmt.Errorf("empty column name in header cell %q", cell)
	}
	if !hasType {
		return name, dataset.String, nil
	}
	typ, err := dataset.ParseType(typeName)
	if err != nil {
		return "", dataset.Invalid, fmt.Errorf("header cell %q: %w", cell, err)
	}
	return name, typ, nil
}

// parseCell converts a text cell to the representation for its declared
// type. An empty cell is a null.
func parseCell(cell string, t dataset.Type) (any, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	switch t {
	case dataset.Decimal, dataset.Double, dataset.Float:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", t, cell)
		}
		return v, nil
	case dataset.Long, dataset.Int, dataset.Short, dataset.Byte:
		v, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", t, cell)
		}
		return v, nil
	case dataset.String:
		return cell, nil
	case dataset.Boolean:
		v, err := strconv.ParseBool(cell)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q", cell)
		}
		return v, nil
	case dataset.Date:
		v, err := time.Parse("2006-01-02", cell)
		if err != nil {
			return nil, fmt.Errorf("invalid date value %q", cell)
		}
		return v, nil
	case dataset.Timestamp:
		v, err := time.Parse(time.RFC3339, cell)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp value %q", cell)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported column type %s", t)
	}
}
