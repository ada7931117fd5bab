package table

import (
	"encoding/csv"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
)

// ReadCSV loads path as a CSV table. The first record is the header; every
// data cell is typed via typedCell (empty -> null, numeric -> float64).
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = norm.NFC.String(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = typedCell(rec[i])
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	return &Table{Columns: header, Rows: rows}, nil
}

// WriteCSV writes columns and pre-formatted rows to path. Callers format
// cells themselves so output bytes are fully under their control; re-running
// a pipeline on identical inputs must produce byte-identical files.
func WriteCSV(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}
