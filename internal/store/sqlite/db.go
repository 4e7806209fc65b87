// Package sqlite stores documents as JSON rows in an embedded SQLite
// database. It backs local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// dsnParams are applied by the driver to every pooled connection.
const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000"

// DefaultPath returns the default database path: ~/.comments/comments.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".comments", "comments.db"), nil
}

// Open opens the database at path and returns the named collection. The
// collection owns the handle and closes it on Close.
func Open(ctx context.Context, path, name string) (*Collection, error) {
	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewCollection(db, name), nil
}

// OpenDB opens (or creates) the database file at path and brings the
// documents schema up to date. Several collections may share the handle.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, closeOnError(db, fmt.Errorf("connecting to %s: %w", path, err))
	}

	if err := migrate(ctx, db); err != nil {
		return nil, closeOnError(db, fmt.Errorf("running migrations: %w", err))
	}

	return db, nil
}

func closeOnError(db *sql.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
