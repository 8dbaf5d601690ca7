package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/helixedit/internal/config"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/engine"
	"github.com/dshills/helixedit/internal/grid"
)

// twoHelices holds strand 0 on helix 0 [0, 10) forward and strand 1 on
// helix 1 [0, 10) reverse.
func twoHelices(t *testing.T) design.Design {
	t.Helper()
	d := design.New().WithGrid(0, &design.Grid{Orientation: design.IdentityQuat})
	m := grid.NewManager(d)
	for x := 0; x < 2; x++ {
		var err error
		d, _, err = m.AddHelix(d, design.GridPosition{Grid: 0, X: x})
		require.NoError(t, err)
	}
	d = d.WithStrand(0, design.NewStrand(design.HelixInterval{Helix: 0, Start: 0, End: 10, Forward: true}, 0xFF000000))
	d = d.WithStrand(1, design.NewStrand(design.HelixInterval{Helix: 1, Start: 0, End: 10, Forward: false}, 0xFF000000))
	return d
}

func setup(t *testing.T, opts ...Option) (*Runner, *engine.Editor, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out)}, opts...)
	return New(opts...), engine.New(engine.WithDesign(twoHelices(t))), &out
}

func TestQueries(t *testing.T) {
	r, ed, out := setup(t)
	_, err := r.Run(context.Background(), ed, "q", `
		print(#strands(), #helices())
		local s = strand(0)
		print(s.length, s.prime5.position, s.prime3.position, s.domains[1].helix, s.cyclic)
		print(length(1), strand(42), strand_of(nucl(1, 3, false)))
	`)
	require.NoError(t, err)
	assert.Equal(t, "2\t2\n10\t0\t9\t0\tfalse\n10\tnil\t1\n", out.String())
	assert.Equal(t, 0, ed.UndoCount(), "a read-only script leaves no undo step")
}

func TestEditsAreOneUndoStep(t *testing.T) {
	ctx := context.Background()
	r, ed, _ := setup(t)

	res, err := r.Run(ctx, ed, "split", `
		cut(nucl(0, 4))
		apply{op = "cut", nucl = {helix = 1, position = 4, forward = false}}
	`)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 4, ed.Snapshot().StrandCount())
	require.Equal(t, 1, ed.UndoCount())
	assert.Equal(t, "script split", ed.History()[0].Label)

	require.NoError(t, ed.Undo(ctx))
	assert.Equal(t, 2, ed.Snapshot().StrandCount())
}

func TestFailureRollsBack(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		source string
	}{
		{"edit error", `cut(nucl(0, 4)); xover(0, 42)`},
		{"lua error", `cut(nucl(0, 4)); error("boom")`},
		{"syntax error", `cut(nucl(0, 4)`},
		{"unknown op", `cut(nucl(0, 4)); apply{op = "fold"}`},
		{"bad color", `cut(nucl(0, 4)); recolor({0}, "pink")`},
		{"sandbox", `cut(nucl(0, 4)); io.write("x")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ed, _ := setup(t)
			before := ed.Snapshot()
			_, err := r.Run(ctx, ed, tt.name, tt.source)
			require.ErrorIs(t, err, ErrScript)
			assert.Equal(t, before.StrandCount(), ed.Snapshot().StrandCount())
			assert.Equal(t, 0, ed.UndoCount())
		})
	}
}

func TestCaughtErrorsDoNotAbort(t *testing.T) {
	r, ed, _ := setup(t)
	_, err := r.Run(context.Background(), ed, "pcall", `
		local ok = pcall(xover, 0, 42)
		assert(not ok)
		cut(nucl(0, 4))
	`)
	require.NoError(t, err)
	assert.Equal(t, 3, ed.Snapshot().StrandCount())
}

func TestLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("timeout", func(t *testing.T) {
		r, ed, _ := setup(t, WithTimeout(50*time.Millisecond))
		_, err := r.Run(ctx, ed, "spin", `cut(nucl(0, 4)); while true do end`)
		require.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, 2, ed.Snapshot().StrandCount())
	})

	t.Run("call stack", func(t *testing.T) {
		r, ed, _ := setup(t, WithCallStackSize(16))
		_, err := r.Run(ctx, ed, "deep", `local function f(n) return 1 + f(n + 1) end f(0)`)
		require.ErrorIs(t, err, ErrScript)
	})
}

func TestSandbox(t *testing.T) {
	r, ed, _ := setup(t)
	_, err := r.Run(context.Background(), ed, "env", `
		assert(io == nil and os == nil)
		assert(load == nil and dofile == nil and require == nil)
		assert(string.upper("a") == "A" and math.floor(1.5) == 1)
	`)
	require.NoError(t, err)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
		local id = new_strand(nucl(0, 20), 5)
		rename(id, "handle")
		print(strand(id).name)
	`), 0o600))

	cfg := config.Default().Script
	r, ed, out := setup(t, FromConfig(cfg)...)
	res, err := r.RunFile(context.Background(), ed, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, "handle\n", out.String())
	assert.Equal(t, "script grow.lua", ed.History()[0].Label)

	_, err = r.RunFile(context.Background(), ed, filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}
