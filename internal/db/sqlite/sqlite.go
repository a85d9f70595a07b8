package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS "user" (
    id              TEXT PRIMARY KEY,
    email           TEXT NOT NULL CHECK (email = lower(email)),
    password_hash   TEXT NOT NULL,
    reset_token     TEXT NULL,
    reset_expires   INTEGER NULL,
    created_at      INTEGER NOT NULL,
    CHECK (
        (reset_token IS NULL AND reset_expires IS NULL)
        OR (reset_token IS NOT NULL AND reset_expires IS NOT NULL)
    )
);

CREATE UNIQUE INDEX IF NOT EXISTS user_email_idx ON "user" (email);
`

// Open opens the database at path and creates the schema if needed.
// Transactions take the write lock as soon as they begin, so units of work
// on the same file are serialized.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000", path)
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if path == MemoryPath {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	return db, nil
}
