package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/helixedit/internal/blob"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/operation"
	"github.com/dshills/helixedit/internal/script"
	"github.com/dshills/helixedit/internal/store"
)

// Open loads the newest revision of the design, or starts from an empty
// design when nothing is saved under its name yet. It returns the loaded
// revision number, zero for a new design.
func (app *Application) Open(ctx context.Context) (int, error) {
	rev, err := app.store.Latest(ctx, app.name)
	if errors.Is(err, store.ErrNotFound) {
		app.setRevision(0)
		return 0, opError("open", app.name, app.editor.Load(design.New()))
	}
	if err != nil {
		return 0, opError("open", app.name, err)
	}
	return app.load(rev)
}

// OpenRevision loads a specific revision.
func (app *Application) OpenRevision(ctx context.Context, number int) (int, error) {
	rev, err := app.store.Load(ctx, app.name, number)
	if err != nil {
		return 0, opError("open", app.name, err)
	}
	return app.load(rev)
}

func (app *Application) load(rev store.Revision) (int, error) {
	if err := app.editor.Load(rev.Design); err != nil {
		return 0, opError("open", app.name, err)
	}
	app.setRevision(rev.Number)
	app.logger.Info("design opened", "revision", rev.Number, "strands", rev.Design.StrandCount())
	return rev.Number, nil
}

func (app *Application) setRevision(n int) {
	app.mu.Lock()
	app.revision = n
	app.mu.Unlock()
}

// Revision returns the revision the editor content derives from.
func (app *Application) Revision() int {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.revision
}

// Import loads a design from a JSON file into the editor.
func (app *Application) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return opError("import", path, err)
	}
	var d design.Design
	if err := d.UnmarshalJSON(data); err != nil {
		return opError("import", path, err)
	}
	return opError("import", path, app.editor.Load(d))
}

// Export writes the current design as JSON.
func (app *Application) Export(path string) error {
	data, err := app.editor.Snapshot().MarshalJSON()
	if err != nil {
		return opError("export", path, err)
	}
	return opError("export", path, os.WriteFile(path, data, 0o644))
}

// Save finishes any pending gesture and stores the design as a new
// revision.
func (app *Application) Save(ctx context.Context, label string) (store.Revision, error) {
	if err := app.editor.Finish(ctx); err != nil {
		return store.Revision{}, opError("save", app.name, err)
	}
	rev, err := app.store.Save(ctx, app.name, app.editor.Snapshot(), label)
	if err != nil {
		return store.Revision{}, opError("save", app.name, err)
	}
	app.setRevision(rev.Number)
	app.logger.Info("design saved", "revision", rev.Number, "label", label)
	return rev, nil
}

// Revisions lists the saved revisions of the design.
func (app *Application) Revisions(ctx context.Context) ([]store.Revision, error) {
	revs, err := app.store.List(ctx, app.name)
	return revs, opError("list", app.name, err)
}

// ApplyFile decodes an operation file and applies every request in it as
// one undo step. Nothing is applied if any request fails.
func (app *Application) ApplyFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, opError("apply", path, err)
	}
	reqs, err := operation.Decode(data)
	if err != nil {
		return 0, opError("apply", path, err)
	}
	return len(reqs), app.ApplyRequests(ctx, "apply "+filepath.Base(path), reqs)
}

// ApplyRequests applies reqs in one transaction labelled lbl.
func (app *Application) ApplyRequests(ctx context.Context, lbl string, reqs []operation.Request) error {
	err := app.editor.Transaction(ctx, lbl, func() error {
		for i, req := range reqs {
			if err := app.editor.Apply(ctx, req); err != nil {
				return fmt.Errorf("request %d (%s): %w", i+1, req.Kind(), err)
			}
		}
		return app.editor.Finish(ctx)
	})
	return opError("apply", lbl, err)
}

// RunScript runs a Lua script file on the design.
func (app *Application) RunScript(ctx context.Context, path string) (script.Result, error) {
	res, err := app.scripts.RunFile(ctx, app.editor, path)
	return res, opError("script", path, err)
}

// Backup writes a backup of the current design now.
func (app *Application) Backup(ctx context.Context) (blob.Info, error) {
	if app.backup == nil {
		return blob.Info{}, ErrNoBackup
	}
	info, err := app.backup.Write(ctx, app.editor.Snapshot())
	return info, opError("backup", app.name, err)
}

// Backups lists the backups of the design.
func (app *Application) Backups(ctx context.Context) ([]blob.Info, error) {
	if app.backup == nil {
		return nil, ErrNoBackup
	}
	infos, err := app.backup.List(ctx)
	return infos, opError("backups", app.name, err)
}

// Restore loads the newest backup into the editor. The restored design
// is not saved until Save is called.
func (app *Application) Restore(ctx context.Context) (blob.Info, error) {
	if app.backup == nil {
		return blob.Info{}, ErrNoBackup
	}
	d, info, err := app.backup.Latest(ctx)
	if err != nil {
		return blob.Info{}, opError("restore", app.name, err)
	}
	if err := app.editor.Load(d); err != nil {
		return blob.Info{}, opError("restore", app.name, err)
	}
	app.logger.Info("backup restored", "key", info.Key)
	return info, nil
}

// Summary describes the current design.
type Summary struct {
	Name        string `json:"name" yaml:"name"`
	Revision    int    `json:"revision" yaml:"revision"`
	Strands     int    `json:"strands" yaml:"strands"`
	Helices     int    `json:"helices" yaml:"helices"`
	Grids       int    `json:"grids" yaml:"grids"`
	Xovers      int    `json:"xovers" yaml:"xovers"`
	Nucleotides int    `json:"nucleotides" yaml:"nucleotides"`
	Scaffold    *int   `json:"scaffold,omitempty" yaml:"scaffold,omitempty"`
	State       string `json:"state" yaml:"state"`
	UndoSteps   int    `json:"undo_steps" yaml:"undo_steps"`
	UndoLimit   int    `json:"undo_limit" yaml:"undo_limit"`
	NextUndo    string `json:"next_undo,omitempty" yaml:"next_undo,omitempty"`

	// Redo lists redo labels, the next one to redo last.
	Redo []string `json:"redo,omitempty" yaml:"redo,omitempty"`
}

// Inspect summarises the current design.
func (app *Application) Inspect() Summary {
	d := app.editor.Snapshot()
	s := Summary{
		Name:      app.name,
		Revision:  app.Revision(),
		Strands:   d.StrandCount(),
		Helices:   len(d.HelixIDs()),
		Grids:     len(d.GridIDs()),
		Xovers:    d.Xovers().Len(),
		State:     app.editor.State().Name(),
		UndoSteps: app.editor.UndoCount(),
		UndoLimit: app.editor.MaxUndoEntries(),
	}
	if next, ok := app.editor.NextUndo(); ok {
		s.NextUndo = next.Label
	}
	for _, r := range app.editor.RedoHistory() {
		s.Redo = append(s.Redo, r.Label)
	}
	d.EachStrand(func(_ int, st *design.Strand) bool {
		s.Nucleotides += st.Length()
		return true
	})
	if id, ok := d.ScaffoldID(); ok {
		s.Scaffold = &id
	}
	return s
}
