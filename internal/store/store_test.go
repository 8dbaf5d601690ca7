package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/helixedit/internal/config"
	"github.com/dshills/helixedit/internal/design"
)

func sample(n int) design.Design {
	d := design.New().WithHelix(0, &design.Helix{Orientation: design.IdentityQuat})
	for i := 0; i < n; i++ {
		d = d.WithStrand(i, design.NewStrand(design.HelixInterval{Helix: 0, Start: 10 * i, End: 10*i + 5, Forward: true}, 0xFF0000FF))
	}
	return d
}

// exercise runs the behaviour every backend must share.
func exercise(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Latest(ctx, "origami")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Save(ctx, "", sample(1), "x")
	assert.ErrorIs(t, err, ErrEmptyName)

	r1, err := s.Save(ctx, "origami", sample(1), "first")
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Number)
	r2, err := s.Save(ctx, "origami", sample(3), "second")
	require.NoError(t, err)
	assert.Equal(t, 2, r2.Number)
	_, err = s.Save(ctx, "brick", sample(2), "other")
	require.NoError(t, err)

	latest, err := s.Latest(ctx, "origami")
	require.NoError(t, err)
	assert.Equal(t, r2.ID, latest.ID)
	assert.Equal(t, "second", latest.Label)
	assert.Equal(t, 3, latest.Design.StrandCount())
	assert.True(t, r2.CreatedAt.Equal(latest.CreatedAt))

	first, err := s.Load(ctx, "origami", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Design.StrandCount())
	st, ok := first.Design.Strand(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0xFF0000FF), st.Color)

	_, err = s.Load(ctx, "origami", 9)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := s.List(ctx, "origami")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Label)
	assert.Equal(t, 0, list[1].Design.StrandCount(), "listing skips designs")

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"brick", "origami"}, names)
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	exercise(t, s)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "helixedit.db")
	s, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	exercise(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer reopened.Close()
	list, err := reopened.List(context.Background(), "origami")
	require.NoError(t, err)
	assert.Len(t, list, 2, "revisions survive reopening")
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("HELIXEDIT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("HELIXEDIT_TEST_POSTGRES_DSN not set")
	}
	s, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.DB().Exec(`DELETE FROM revisions`)
	require.NoError(t, err)
	exercise(t, s)
}

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x = ? AND y = ?`
	assert.Equal(t, q, sqliteDialect.rebind(q))
	assert.Equal(t, `SELECT a FROM t WHERE x = $1 AND y = $2`, postgresDialect.rebind(q))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.StoreConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, config.StoreConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.StoreConfig{Driver: "mongo"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
