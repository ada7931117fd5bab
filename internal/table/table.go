package table

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyTable indicates a source that parsed correctly but contained no
// data rows. Empty inputs are fatal for the pipeline; there is nothing to
// difference or allocate.
var ErrEmptyTable = errors.New("table: no data rows")

// Cell is one typed value in a row: float64, string, or nil (null).
type Cell any

// Row maps column name to cell value. Accessors null-fill on read.
type Row map[string]Cell

// Num returns the numeric value of a cell, or 0 when the cell is null,
// missing, or non-numeric. This implements the null-to-zero fill rule.
func (r Row) Num(col string) float64 {
	v, ok := r[col]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Text returns the string form of a cell, or "" when the cell is null or
// missing. Numeric cells format with minimal digits so ids read from
// numeric columns are stable across sources.
func (r Row) Text(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

// Null reports whether the cell is null or absent.
func (r Row) Null(col string) bool {
	v, ok := r[col]
	return !ok || v == nil
}

// Table is an immutable in-memory table: ordered columns plus data rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// RequireColumns returns an error naming the first bound column missing from
// the table. Used by the differ to fail before any computation.
func (t *Table) RequireColumns(cols ...string) error {
	for _, c := range cols {
		if c == "" {
			continue
		}
		if !t.HasColumn(c) {
			return fmt.Errorf("table: missing required column %q (have %s)",
				c, strings.Join(t.Columns, ", "))
		}
	}
	return nil
}

// Read loads a table from path. A "file#name" path selects a table inside a
// SQLite database; anything else is read as CSV.
func Read(path string) (*Table, error) {
	if file, name, ok := strings.Cut(path, "#"); ok {
		return ReadSQLite(file, name)
	}
	return ReadCSV(path)
}

// typedCell converts raw text into a Cell: empty text is null, numeric text
// is float64, anything else is an NFC-normalized string.
func typedCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return norm.NFC.String(s)
}

// sortedKeys returns map keys in lexical order, for deterministic iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
