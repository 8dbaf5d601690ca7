package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/dispatcher"
	"github.com/dshills/helixedit/internal/engine/history"
	"github.com/dshills/helixedit/internal/event"
	"github.com/dshills/helixedit/internal/operation"
	"github.com/dshills/helixedit/internal/session"
)

// state is what one undo step restores.
type state struct {
	Design     design.Design
	Controller dispatcher.Controller
}

// Editor owns one design document.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Editor struct {
	mu sync.Mutex

	id      uuid.UUID
	cur     state
	history *history.History[state]

	bus       *event.Bus
	metrics   *dispatcher.Metrics
	logger    *slog.Logger
	pushHooks []PushHook
	tracker   *session.Tracker

	// txnPushed records a push made inside a transaction. Hooks for it
	// run when the transaction commits.
	txnPushed bool

	// Configuration
	initDesign     design.Design
	maxUndoEntries int
}

// New creates an Editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		id:             uuid.New(),
		initDesign:     design.New(),
		maxUndoEntries: DefaultMaxUndoEntries,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cur = state{Design: design.Reidentify(e.initDesign), Controller: dispatcher.New()}
	e.history = history.New[state](e.maxUndoEntries)
	e.tracker = session.NewTracker()
	e.logger = e.logger.With("editor", e.id)
	return e
}

// ID identifies the editor in events and logs.
func (e *Editor) ID() uuid.UUID { return e.id }

// Snapshot returns the current design.
func (e *Editor) Snapshot() design.Design {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur.Design
}

// Controller returns the current interaction controller.
func (e *Editor) Controller() dispatcher.Controller {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur.Controller
}

// State returns the current session state.
func (e *Editor) State() session.State {
	return e.Controller().State()
}

// Load replaces the document with d and clears the history.
func (e *Editor) Load(d design.Design) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDesign, err)
	}
	e.mu.Lock()
	e.cur = state{Design: design.Reidentify(d), Controller: dispatcher.New()}
	e.history.Clear()
	e.mu.Unlock()
	e.syncState(context.Background())
	return nil
}

// Apply applies a design or clipboard operation.
//
// When the controller refuses the operation in its current state, the
// pending operation is finished and the operation is tried once more. On
// error the document is unchanged.
func (e *Editor) Apply(ctx context.Context, req operation.Request) error {
	return e.run(ctx, req.Kind(), label(req), func(s state) (dispatcher.Outcome, dispatcher.Controller, error) {
		switch r := req.(type) {
		case operation.Operation:
			return s.Controller.ApplyOperation(s.Design, r)
		case operation.CopyOperation:
			return s.Controller.ApplyCopyOperation(s.Design, r)
		}
		return dispatcher.Outcome{}, s.Controller, fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	})
}

// UpdatePending applies the effect of a gesture and keeps the gesture as
// the pending operation.
func (e *Editor) UpdatePending(ctx context.Context, p operation.Pending) error {
	return e.run(ctx, p.Effect().Kind(), p.Description(), func(s state) (dispatcher.Outcome, dispatcher.Controller, error) {
		return s.Controller.UpdatePendingOperation(s.Design, p)
	})
}

type applyFunc func(s state) (dispatcher.Outcome, dispatcher.Controller, error)

func (e *Editor) run(ctx context.Context, kind operation.Kind, lbl string, apply applyFunc) error {
	start := time.Now()

	e.mu.Lock()
	out, ctrl, err := apply(e.cur)
	if errors.Is(err, dispatcher.ErrIncompatibleState) {
		if finished, ferr := e.cur.Controller.Notify(session.FinishOperation{}); ferr == nil {
			e.logger.Debug("finishing operation before retry", "kind", kind, "state", e.cur.Controller.State().Name())
			out, ctrl, err = apply(state{Design: e.cur.Design, Controller: finished})
		}
	}
	if err == nil {
		e.commitLocked(lbl, out, ctrl)
	}
	cur := e.cur.Design
	st := e.cur.Controller.State()
	undo := e.history.UndoCount()
	deferHooks := err == nil && out.Kind == dispatcher.Push && e.history.IsGrouping()
	if deferHooks {
		e.txnPushed = true
	}
	e.mu.Unlock()

	e.metrics.Observe(kind, out.Kind, err, time.Since(start))

	if err != nil {
		class := dispatcher.Classify(err)
		e.logger.Info("operation rejected", "kind", kind, "class", class, "err", err)
		publish(ctx, e, event.TopicEditRejected, event.EditRejected{Kind: kind.String(), Class: class.String(), Err: err})
		return err
	}

	e.logger.Debug("operation applied", "kind", kind, "outcome", out.Kind)
	if out.Kind != dispatcher.NoOp {
		publish(ctx, e, event.TopicDesignChanged, event.DesignChanged{
			Kind:        kind.String(),
			Outcome:     out.Kind.String(),
			StrandCount: cur.StrandCount(),
			HelixCount:  len(cur.HelixIDs()),
			UndoCount:   undo,
		})
	}
	e.syncState(ctx)
	if out.Kind == dispatcher.Push && !deferHooks {
		e.runHooks(ctx, cur, st)
	}
	return nil
}

func (e *Editor) runHooks(ctx context.Context, d design.Design, st session.State) {
	for _, hook := range e.pushHooks {
		hook(ctx, d, st)
	}
}

// syncState moves the tracker to the controller's state and publishes
// TopicSessionChanged when the variant changes.
func (e *Editor) syncState(ctx context.Context) {
	from := e.tracker.Current()
	to := e.State()
	if e.tracker.Set(to) {
		publish(ctx, e, event.TopicSessionChanged, event.SessionChanged{From: from.Name(), To: to.Name()})
	}
}

// OnStateChange registers cb to run when the session state changes
// variant. The returned function unregisters it.
func (e *Editor) OnStateChange(cb session.ChangeCallback) func() {
	return e.tracker.OnChange(cb)
}

func (e *Editor) commitLocked(lbl string, out dispatcher.Outcome, ctrl dispatcher.Controller) {
	switch out.Kind {
	case dispatcher.Push:
		e.history.Push(lbl, e.cur)
		e.cur = state{Design: design.Reidentify(out.Design), Controller: ctrl}
	case dispatcher.Replace:
		e.cur = state{Design: design.Reidentify(out.Design), Controller: ctrl}
	default:
		e.cur.Controller = ctrl
	}
}

// Notify feeds a session event to the controller. The design is untouched.
func (e *Editor) Notify(ctx context.Context, ev session.Event) error {
	e.mu.Lock()
	c, err := e.cur.Controller.Notify(ev)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.cur.Controller = c
	e.mu.Unlock()
	e.syncState(ctx)
	return nil
}

// Finish ends the current gesture or interaction.
func (e *Editor) Finish(ctx context.Context) error {
	return e.Notify(ctx, session.FinishOperation{})
}

// Undo restores the design before the last undo step. The state it leaves
// is finished before it is kept for redo.
func (e *Editor) Undo(ctx context.Context) error {
	e.mu.Lock()
	prev, err := e.history.PopUndo()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	leaving := e.cur
	leaving.Controller = finished(leaving.Controller)
	e.history.PushRedo(e.history.Entry(prev.Label, leaving))

	restored := prev.State
	restored.Controller = finished(restored.Controller)
	e.cur = restored
	moved := e.movedLocked(prev.Label)
	e.mu.Unlock()

	e.logger.Debug("undo", "label", prev.Label, "undo", moved.UndoCount, "redo", moved.RedoCount)
	publish(ctx, e, event.TopicHistoryUndone, moved)
	e.syncState(ctx)
	return nil
}

// Redo reapplies the last undone step.
func (e *Editor) Redo(ctx context.Context) error {
	e.mu.Lock()
	next, err := e.history.PopRedo()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.history.PushUndoKeepRedo(e.history.Entry(next.Label, e.cur))
	e.cur = next.State
	moved := e.movedLocked(next.Label)
	e.mu.Unlock()

	e.logger.Debug("redo", "label", next.Label, "undo", moved.UndoCount, "redo", moved.RedoCount)
	publish(ctx, e, event.TopicHistoryRedone, moved)
	e.syncState(ctx)
	return nil
}

// finished returns c after FinishOperation, or reset to Normal when the
// state refuses to finish.
func finished(c dispatcher.Controller) dispatcher.Controller {
	if f, err := c.Notify(session.FinishOperation{}); err == nil && session.Stable(f.State()) {
		return f
	}
	f, _ := c.Notify(session.Reset{})
	return f
}

func (e *Editor) movedLocked(lbl string) event.HistoryMoved {
	return event.HistoryMoved{Label: lbl, UndoCount: e.history.UndoCount(), RedoCount: e.history.RedoCount()}
}

// Transaction runs fn with every edit it makes folded into one undo step.
// If fn fails, the document, the controller and both history stacks return
// to their state before the transaction. Push hooks run once, on commit.
// Nested transactions belong to the outermost one.
func (e *Editor) Transaction(ctx context.Context, lbl string, fn func() error) error {
	if e.history.IsGrouping() {
		return fn()
	}
	e.mu.Lock()
	before := e.cur
	cp := e.history.CreateCheckpoint()
	e.txnPushed = false
	e.mu.Unlock()

	err := e.history.Transaction(lbl, fn)

	e.mu.Lock()
	pushed := e.txnPushed
	e.txnPushed = false
	if err != nil {
		e.history.Rollback(cp)
		e.cur = before
	}
	cur, st := e.cur.Design, e.cur.Controller.State()
	e.mu.Unlock()

	if err != nil {
		e.logger.Info("transaction rolled back", "label", lbl, "err", err)
		e.syncState(ctx)
		return err
	}
	if pushed {
		e.runHooks(ctx, cur, st)
	}
	return nil
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// UndoCount returns the number of undo steps available.
func (e *Editor) UndoCount() int { return e.history.UndoCount() }

// RedoCount returns the number of redo steps available.
func (e *Editor) RedoCount() int { return e.history.RedoCount() }

// History lists the undo steps, oldest first.
func (e *Editor) History() []history.Info { return e.history.UndoInfo() }

// RedoHistory lists the redo steps, oldest first. The last one is redone
// first.
func (e *Editor) RedoHistory() []history.Info { return e.history.RedoInfo() }

// NextUndo describes the step Undo would revert.
func (e *Editor) NextUndo() (history.Info, bool) { return e.history.PeekUndo() }

// MaxUndoEntries returns the undo limit.
func (e *Editor) MaxUndoEntries() int { return e.history.MaxEntries() }

// SetMaxUndoEntries changes the undo limit, dropping the oldest steps if
// needed.
func (e *Editor) SetMaxUndoEntries(n int) { e.history.SetMaxEntries(n) }

// ClearHistory removes all undo/redo history.
func (e *Editor) ClearHistory() { e.history.Clear() }

func publish[T any](ctx context.Context, e *Editor, t event.Topic, payload T) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, event.New(t, payload, "engine").WithSession(e.id)); err != nil {
		e.logger.Warn("publish failed", "topic", t, "err", err)
	}
}

func label(req operation.Request) string {
	if s, ok := req.(fmt.Stringer); ok {
		return s.String()
	}
	return req.Kind().String()
}
