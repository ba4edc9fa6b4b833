// Package dataset loads the tabular CSV source the clouds draw their
// vocabulary from. The first row is the header; rows that fail to parse
// contribute nothing.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	apperrors "github.com/michellelius/word-visualisation/pkg/errors"
)

// Table is an immutable view over the parsed rows. Filters return new
// views sharing the underlying data.
type Table struct {
	fields []string
	index  map[string]int
	rows   [][]string
}

// Load reads and parses the CSV file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV data from r. Malformed rows are skipped and counted, not
// fatal; an input without a header row is.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header row", apperrors.ErrEmptyInput)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var rows [][]string
	var skipped int
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, record)
	}
	if skipped > 0 {
		slog.Default().With("component", "dataset").Debug("skipped malformed rows", "count", skipped)
	}

	return &Table{fields: header, index: index, rows: rows}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Fields returns the header names in file order.
func (t *Table) Fields() []string {
	return t.fields
}

// Column returns every value of the named field, in row order. Rows too
// short to carry the field are skipped; an unknown field yields an empty
// column.
func (t *Table) Column(field string) []string {
	col, ok := t.index[field]
	if !ok {
		slog.Default().With("component", "dataset").Debug("unknown field requested", "field", field)
		return nil
	}
	values := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if col >= len(row) {
			continue
		}
		values = append(values, row[col])
	}
	return values
}

// FilterContains returns the rows whose named field contains substr. The
// match is case-sensitive, so "Male" selects male rows without also
// selecting "Female" ones.
func (t *Table) FilterContains(field, substr string) *Table {
	col, ok := t.index[field]
	if !ok {
		return &Table{fields: t.fields, index: t.index}
	}
	var rows [][]string
	for _, row := range t.rows {
		if col >= len(row) {
			continue
		}
		if strings.Contains(row[col], substr) {
			rows = append(rows, row)
		}
	}
	return &Table{fields: t.fields, index: t.index, rows: rows}
}
