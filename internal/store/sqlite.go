package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var sqliteDialect = dialect{
	name: "sqlite",
	ddl: `CREATE TABLE IF NOT EXISTS revisions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		number INTEGER NOT NULL,
		label TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		payload BLOB NOT NULL,
		UNIQUE (name, number)
	)`,
}

// OpenSQLite opens, creating it if needed, the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		path = "helixedit.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	s, err := openSQL(ctx, "sqlite", path, sqliteDialect)
	if err != nil {
		return nil, err
	}
	// database/sql pools connections; SQLite serialises writers anyway.
	s.db.SetMaxOpenConns(1)
	return s, nil
}
