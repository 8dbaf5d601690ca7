package store

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const defaultPostgresDSN = "postgres://localhost/helixedit?sslmode=disable"

var postgresDialect = dialect{
	name:     "postgres",
	numbered: true,
	ddl: `CREATE TABLE IF NOT EXISTS revisions (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		number INTEGER NOT NULL,
		label TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		payload JSONB NOT NULL,
		UNIQUE (name, number)
	)`,
}

// OpenPostgres connects to the database at dsn.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	return openSQL(ctx, "pgx", dsn, postgresDialect)
}
