package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations run in order. PRAGMA user_version holds how many have been
// applied to a database file.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT    NOT NULL,
		id         TEXT    NOT NULL,
		body       TEXT    NOT NULL CHECK (json_valid(body)),
		UNIQUE (collection, id)
	)`,
	`CREATE INDEX IF NOT EXISTS documents_post_id
		ON documents (collection, json_extract(body, '$.postId'))`,
}

// migrate applies the migrations past the recorded schema version.
func migrate(ctx context.Context, db *sql.DB) error {
	version, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("schema version %d is newer than supported version %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		if err := applyMigration(ctx, db, i); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// applyMigration runs migration i and records it in one transaction.
func applyMigration(ctx context.Context, db *sql.DB, i int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
		return rollback(tx, err)
	}
	// PRAGMA statements take no bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
		return rollback(tx, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func rollback(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
	}
	return err
}
