package table

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV_TypesCells(t *testing.T) {
	path := writeFile(t, "links.csv", "id,len,name\n1,2.5,main st\n2,,\n")

	tbl, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"id", "len", "name"}, tbl.Columns)

	assert.Equal(t, 1.0, tbl.Rows[0].Num("id"))
	assert.Equal(t, 2.5, tbl.Rows[0].Num("len"))
	assert.Equal(t, "main st", tbl.Rows[0].Text("name"))

	// Empty cells are null and read as zero / empty.
	assert.True(t, tbl.Rows[1].Null("len"))
	assert.Zero(t, tbl.Rows[1].Num("len"))
	assert.Empty(t, tbl.Rows[1].Text("name"))
}

func TestReadCSV_NumericIDKeepsStableText(t *testing.T) {
	path := writeFile(t, "links.csv", "id\n42\n")
	tbl, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "42", tbl.Rows[0].Text("id"))
}

func TestReadCSV_HeaderOnlyIsEmptyTable(t *testing.T) {
	path := writeFile(t, "empty.csv", "id,len\n")
	_, err := ReadCSV(path)
	require.ErrorIs(t, err, ErrEmptyTable)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestRequireColumns_NamesMissingColumn(t *testing.T) {
	tbl := &Table{Columns: []string{"id", "len"}}
	require.NoError(t, tbl.RequireColumns("id", "len"))
	require.NoError(t, tbl.RequireColumns("id", ""), "blank bindings are skipped")

	err := tbl.RequireColumns("id", "ab_flow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ab_flow")
}

func TestRead_DispatchesOnHashSuffix(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "model.db")

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE links (id TEXT, len REAL, proj TEXT);
		INSERT INTO links VALUES ('1', 2.5, 'P1'), ('2', 1.0, NULL);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tbl, err := Read(dbPath + "#links")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"id", "len", "proj"}, tbl.Columns)
	assert.Equal(t, 2.5, tbl.Rows[0].Num("len"))
	assert.Equal(t, "P1", tbl.Rows[0].Text("proj"))
	assert.True(t, tbl.Rows[1].Null("proj"))
}

func TestReadSQLite_RejectsBadTableName(t *testing.T) {
	_, err := ReadSQLite("model.db", "links; DROP TABLE links")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sqlite table name")
}

func TestReadSQLite_MissingFile(t *testing.T) {
	_, err := ReadSQLite(filepath.Join(t.TempDir(), "nope.db"), "links")
	require.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := WriteCSV(path, []string{"proj_id", "total"}, [][]string{
		{"P1", "12.5"},
		{"P2", "3"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "proj_id,total\nP1,12.5\nP2,3\n", string(data))
}
