package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{t: t, dir: dir, config: filepath.Join(dir, "helixedit.toml")}
	h.write("helixedit.toml", fmt.Sprintf(`
[log]
level = "warn"

[store]
driver = "sqlite"
dsn = %q

[backup]
driver = "fs"
dir = %q
every = 0
`, filepath.Join(dir, "designs.db"), filepath.Join(dir, "backups")))
	return h
}

func (h *harness) write(name, content string) string {
	h.t.Helper()
	p := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", h.config, "--design", "tile"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

const ops = `
- op: add_grid
- op: add_grid_helix
  position: {grid: 0, x: 0, y: 0}
  length: 12
- op: cut
  nucl: {helix: 0, position: 6, forward: true}
`

func TestWorkflow(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("new")
	require.NoError(t, err)
	assert.Equal(t, "tile revision 1\n", out)

	out, err = h.run("apply", "-m", "scaffold", h.write("ops.yaml", ops))
	require.NoError(t, err)
	assert.Equal(t, "tile revision 2: scaffold\n", out)

	out, err = h.run("inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "strands: 3\n")
	assert.Contains(t, out, "revision: 2\n")

	out, err = h.run("inspect", "-r", "1", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"strands": 0`)

	out, err = h.run("script", "-n", h.write("join.lua", `xover(strand_of(nucl(0, 0)), strand_of(nucl(0, 7)))`))
	require.NoError(t, err)
	assert.Contains(t, out, "strands: 2\n")

	out, err = h.run("revisions")
	require.NoError(t, err)
	assert.Contains(t, out, "REV")
	assert.Contains(t, out, "scaffold")
	assert.NotContains(t, out, "join.lua", "dry runs are not saved")

	path := filepath.Join(h.dir, "tile.json")
	_, err = h.run("export", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	key, err := h.run("backup")
	require.NoError(t, err)
	assert.Contains(t, key, "helixedit/tile/")
	out, err = h.run("backup", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, key[:len(key)-1])

	out, err = h.run("restore")
	require.NoError(t, err)
	assert.Equal(t, "tile revision 3\n", out)
}

func TestFailures(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("apply", h.write("bad.yaml", "- op: xover\n  prime5: 0\n  prime3: 1\n"))
	assert.Error(t, err)
	out, err := h.run("revisions")
	require.NoError(t, err)
	assert.Equal(t, "REV  CREATED  LABEL\n", out, "a failed apply saves nothing")

	_, err = h.run("script", h.write("bad.lua", `error("nope")`))
	assert.Error(t, err)

	_, err = h.run("inspect", "-f", "xml")
	assert.Error(t, err)

	_, err = h.run("apply")
	assert.Error(t, err)
}
