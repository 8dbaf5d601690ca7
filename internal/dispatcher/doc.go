// Package dispatcher applies operations to a design.
//
// A Controller carries the interaction state of a session (its
// session.State, the staple color counter and the clipboard) and turns an
// operation and a design snapshot into an Outcome and the next Controller.
// It never keeps a design of its own except the starting snapshot of a
// gesture, which is what makes repeated gesture updates idempotent.
//
// # Outcomes
//
// Every successful application yields one of three outcomes:
//
//   - Push: the new design is a new undo step.
//   - Replace: the new design replaces the current one without an undo
//     step; it is produced while a gesture is in progress.
//   - NoOp: only the controller changed.
//
// Whether an edit pushes or replaces is decided by the state the controller
// was in before the operation: resting states push, gesture states replace.
//
// # Errors
//
// Failed operations leave both the design and the controller untouched.
// Classify groups every sentinel error of the editing core into a Class,
// which is what the editor reports and what metrics are labelled with.
//
// # Usage
//
//	c := dispatcher.New()
//	out, c, err := c.ApplyOperation(d, operation.Cut{Nucl: n})
//	if errors.Is(err, dispatcher.ErrIncompatibleState) {
//	    c, _ = c.Notify(session.FinishOperation{})
//	    out, c, err = c.ApplyOperation(d, operation.Cut{Nucl: n})
//	}
package dispatcher
