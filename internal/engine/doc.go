// Package engine provides the editor that owns a DNA design document.
//
// The editor combines the current design snapshot, the interaction
// controller and the undo/redo history into a single thread-safe API. It
// is the only writer of the history: every operation goes through the
// dispatcher, and the outcome decides what happens to the stacks.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - topology: pure strand-mutation algorithms (cut, merge, crossovers)
//   - history: bounded undo/redo stacks of immutable snapshots
//
// # Thread Safety
//
// Writers are serialised by a mutex. Snapshot returns the current design,
// which is immutable, so readers may keep using it while edits continue.
//
// # Basic Usage
//
//	ed := engine.New(engine.WithDesign(d), engine.WithBus(bus))
//	if err := ed.Apply(ctx, operation.Cut{Nucl: n}); err != nil {
//	    // the design is untouched; an edit.rejected event was published
//	}
//	_ = ed.Undo(ctx)
//
// An operation that the current interaction state does not accept is
// retried once after finishing the pending operation, so that a script
// can cut in the middle of a gesture.
//
// # Undo Grouping
//
// Several edits can form a single undo step:
//
//	err := ed.Transaction(ctx, "script", func() error {
//	    ...
//	})
//
// When fn fails the document returns to the state before the transaction.
package engine
