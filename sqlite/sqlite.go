// Package sqlite provides SQLite-based storage for crawl runs and their records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas returns the connection settings applied on Open.
// WAL is skipped for in-memory databases, which do not support it.
func (db *DB) pragmas() []string {
	p := []string{
		// Wait for the lock instead of failing with "database is locked".
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if db.path != ":memory:" {
		p = append(p, "PRAGMA journal_mode = WAL")
	}
	return p
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open database %s: %w", db.path, err)
	}

	// A crawl has exactly one writer, the engine's coordinator.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect to database %s: %w", db.path, err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS crawls (
			id TEXT PRIMARY KEY,
			seed_url TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			crawl_id TEXT NOT NULL REFERENCES crawls(id) ON DELETE CASCADE,
			source_url TEXT NOT NULL,
			content TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			position INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_records_crawl_id ON records(crawl_id, position);
		CREATE INDEX IF NOT EXISTS idx_records_source_url ON records(source_url);
	`

	_, err := db.db.Exec(schema)
	return err
}
