// Package dataset defines the tabular source schemas of the pipeline,
// the static region lookup, and semicolon-delimited CSV input/output for
// the intermediate tables exchanged between stages.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Delimiter used by every intermediate table of the pipeline.
const Delimiter = ';'

// Table is a raw delimited table: one header row plus data rows, all
// cells still strings. Typed coercion happens in the schema-specific
// readers.
type Table struct {
	Header []string
	Rows   [][]string
}

// Col returns the index of the named header column, or -1.
func (t *Table) Col(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadTable reads a semicolon-delimited file with one header row.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = Delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows = append(rows, rec)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// WriteTable writes header and rows semicolon-delimited, truncating any
// existing file.
func WriteTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = Delimiter

	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row of %s: %w", path, err)
		}
	}

	w.Flush()
	return w.Error()
}

// cell returns the cell value by index, empty when the column is absent
// or the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func rowError(path string, row int, column string, err error) error {
	return fmt.Errorf("%s row %d: column %s: %w", path, row+1, column, err)
}
