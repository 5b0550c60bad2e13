package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// NewSQLite opens (and creates if needed) a SQLite database at path.
// SQLite allows a single writer, so the pool is pinned to one connection;
// this also keeps an in-memory database alive for the lifetime of the pool.
func NewSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		path = "agritrace.db"
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}
