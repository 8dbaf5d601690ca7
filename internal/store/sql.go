package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/helixedit/internal/design"
)

var sqlOpen = sql.Open

// dialect holds what differs between the SQL backends.
type dialect struct {
	name string
	ddl  string
	// numbered placeholders ($1, $2) instead of ?
	numbered bool
}

func (d dialect) rebind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQL stores revisions in a single table, one JSON payload per row.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

var _ Store = (*SQL)(nil)

func openSQL(ctx context.Context, driver, dsn string, d dialect) (*SQL, error) {
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}
	if _, err := db.ExecContext(ctx, d.ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create revisions table: %w", err)
	}
	return &SQL{db: db, dialect: d}, nil
}

// DB exposes the underlying sql.DB for tests.
func (s *SQL) DB() *sql.DB { return s.db }

// Save implements Store.
func (s *SQL) Save(ctx context.Context, name string, d design.Design, label string) (rev Revision, retErr error) {
	if name == "" {
		return Revision{}, ErrEmptyName
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return Revision{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	var last int
	row := tx.QueryRowContext(ctx, s.dialect.rebind(`SELECT COALESCE(MAX(number), 0) FROM revisions WHERE name = ?`), name)
	if err := row.Scan(&last); err != nil {
		return Revision{}, fmt.Errorf("next revision: %w", err)
	}
	rev = Revision{
		ID:        uuid.New(),
		Name:      name,
		Number:    last + 1,
		Label:     label,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err = tx.ExecContext(ctx, s.dialect.rebind(
		`INSERT INTO revisions (id, name, number, label, created_at, payload) VALUES (?, ?, ?, ?, ?, ?)`),
		rev.ID.String(), rev.Name, rev.Number, rev.Label, rev.CreatedAt.UnixMicro(), string(payload))
	if err != nil {
		return Revision{}, fmt.Errorf("insert revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Revision{}, err
	}
	return rev, nil
}

// Latest implements Store.
func (s *SQL) Latest(ctx context.Context, name string) (Revision, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(
		`SELECT id, name, number, label, created_at, payload FROM revisions WHERE name = ? ORDER BY number DESC LIMIT 1`), name)
	rev, err := scanRevision(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, notFound(name, 0)
	}
	return rev, err
}

// Load implements Store.
func (s *SQL) Load(ctx context.Context, name string, number int) (Revision, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(
		`SELECT id, name, number, label, created_at, payload FROM revisions WHERE name = ? AND number = ?`), name, number)
	rev, err := scanRevision(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, notFound(name, number)
	}
	return rev, err
}

// List implements Store.
func (s *SQL) List(ctx context.Context, name string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(
		`SELECT id, name, number, label, created_at FROM revisions WHERE name = ? ORDER BY number`), name)
	if err != nil {
		return nil, fmt.Errorf("select revisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Revision
	for rows.Next() {
		rev, err := scanRevision(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// Names implements Store.
func (s *SQL) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT name FROM revisions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Close implements Store.
func (s *SQL) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(sc scanner, withPayload bool) (Revision, error) {
	var (
		rev     Revision
		id      string
		created int64
		payload []byte
	)
	dest := []any{&id, &rev.Name, &rev.Number, &rev.Label, &created}
	if withPayload {
		dest = append(dest, &payload)
	}
	if err := sc.Scan(dest...); err != nil {
		return Revision{}, err
	}
	var err error
	if rev.ID, err = uuid.Parse(id); err != nil {
		return Revision{}, fmt.Errorf("revision id: %w", err)
	}
	rev.CreatedAt = time.UnixMicro(created).UTC()
	if withPayload {
		if err := json.Unmarshal(payload, &rev.Design); err != nil {
			return Revision{}, fmt.Errorf("decode design: %w", err)
		}
	}
	return rev, nil
}
