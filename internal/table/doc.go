// Package table loads link and cost tables into memory.
//
// Two source formats are supported behind one path syntax:
//
//   - plain CSV: "networks/build.csv"
//   - SQLite:    "networks/model.db#links" (path, '#', table name)
//
// Both loaders produce the same in-memory Table of generic rows. Cells are
// typed at load time: numeric-looking text becomes float64, empty cells
// become null. Row accessors null-fill on read (Num returns 0 for a null or
// missing cell), which is the pipeline's null-to-zero rule.
//
// String cells are NFC-normalized at load time so that project ids and other
// text keys read from different sources compare equal.
//
// # SQLite configuration
//
// SQLite sources are opened read-only with a single-connection pool and a
// busy timeout, matching how the rest of the toolchain opens model databases.
package table
