// Package sqlite stores docnav page trees in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB is a SQLite database holding one page tree.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path. Nothing is opened until Open.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragma is a connection setting applied by Open.
type pragma struct {
	stmt     string
	fileOnly bool
}

var pragmas = []pragma{
	{stmt: "PRAGMA busy_timeout = 5000"},
	// WAL lets readers run during an import. In-memory databases reject it.
	{stmt: "PRAGMA journal_mode = WAL", fileOnly: true},
	{stmt: "PRAGMA foreign_keys = ON"},
}

// migrations create the page tables. Each statement is idempotent.
var migrations = []struct {
	name string
	stmt string
}{
	{"pages", `
		CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			parent_id TEXT REFERENCES pages(id) ON DELETE CASCADE,
			route TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		)`},
	{"pages parent index", `CREATE INDEX IF NOT EXISTS idx_pages_parent_id ON pages(parent_id)`},
	{"pages route index", `CREATE INDEX IF NOT EXISTS idx_pages_route ON pages(route)`},
	{"tree_revision", `
		CREATE TABLE IF NOT EXISTS tree_revision (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			revision INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)`},
}

// Open connects to the database, applies pragmas and runs migrations.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite has a single writer, and ":memory:" is per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, p := range pragmas {
		if p.fileOnly && db.path == MemoryPath {
			continue
		}
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", p.stmt, err)
		}
	}

	for _, m := range migrations {
		if _, err := conn.Exec(m.stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to create %s: %w", m.name, err)
		}
	}

	db.db = conn
	return nil
}

// Close closes the database. It is safe to call on a DB that was never opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction. Tree reads and writes run in one so a
// reader never sees half of an import.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}
