// Package store persists named designs as numbered revisions.
//
// Every Save appends a revision; nothing is overwritten. Revisions are
// numbered from 1 per design name. Three backends share the interface: an
// in-memory map, SQLite through modernc.org/sqlite and Postgres through
// pgx's database/sql driver.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/helixedit/internal/config"
	"github.com/dshills/helixedit/internal/design"
)

// Errors returned by stores.
var (
	ErrNotFound      = errors.New("store: revision not found")
	ErrEmptyName     = errors.New("store: empty design name")
	ErrUnknownDriver = errors.New("store: unknown driver")
)

// Revision is one saved version of a design.
type Revision struct {
	ID        uuid.UUID
	Name      string
	Number    int
	Label     string
	CreatedAt time.Time
	// Design is only filled by Latest and Load.
	Design design.Design
}

// Store persists revisions.
type Store interface {
	// Save appends a revision of d under name.
	Save(ctx context.Context, name string, d design.Design, label string) (Revision, error)
	// Latest returns the newest revision of name.
	Latest(ctx context.Context, name string) (Revision, error)
	// Load returns revision number of name.
	Load(ctx context.Context, name string, number int) (Revision, error)
	// List returns the revisions of name, oldest first, without designs.
	List(ctx context.Context, name string) ([]Revision, error)
	// Names returns the saved design names in order.
	Names(ctx context.Context) ([]string, error)
	Close() error
}

// Open returns the store selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.DSN)
	case "postgres":
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func notFound(name string, number int) error {
	if number == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fmt.Errorf("%w: %s@%d", ErrNotFound, name, number)
}
