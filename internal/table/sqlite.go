package table

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"
)

// Table names come from user config and are interpolated into SQL, so they
// are restricted to identifier characters.
var sqliteIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadSQLite loads one table from a SQLite database file.
//
// The database is opened read-only with a single-connection pool and a busy
// timeout, so a model database held open by the GIS host can still be read.
func ReadSQLite(path, name string) (*Table, error) {
	if !sqliteIdent.MatchString(name) {
		return nil, fmt.Errorf("invalid sqlite table name %q", name)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	// SQLite supports one writer at a time; a single connection also keeps
	// row order stable for a given table.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect sqlite %s: %w", path, err)
	}

	// rowid ordering keeps re-reads deterministic.
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", name))
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", name, err)
	}

	var out []Row
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", name, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = sqliteCell(raw[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s#%s: %w", path, name, ErrEmptyTable)
	}

	return &Table{Columns: cols, Rows: out}, nil
}

// sqliteCell maps a scanned driver value onto the Cell type system.
func sqliteCell(v any) Cell {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return float64(x)
	case float64:
		return x
	case string:
		return norm.NFC.String(x)
	case []byte:
		return typedCell(string(x))
	}
	return nil
}
