// Package sqlite provides the SQLite-based implementation of the content store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements two driven ports over a
// single connection pool:
//
//   - ContentStore: Content, summary and label persistence
//   - RawStatementStore: Parameterised ad hoc statements
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.brainspread/data/brainspread.db
//
// # Connection Settings
//
// Every pooled connection is opened in WAL journal mode with foreign keys
// enforced, so summary and label rows can only reference existing contents.
package sqlite
