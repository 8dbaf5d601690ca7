// Package history provides undo/redo stacks of immutable snapshots.
//
// Each entry holds the whole state to return to, so undoing never has to
// replay or invert an edit: the caller pops an entry and makes its state
// current. Entries are identified by a UUID and carry a label and a
// timestamp for display.
//
//	h := history.New[State](1000)
//	h.Push("cut", before)   // before the edit becomes the undo point
//	e, err := h.PopUndo()   // e.State is the state to restore
//	h.PushRedo(h.Entry("redo", current))
//
// # Grouping
//
// Several pushes can be folded into one undo step:
//
//	h.BeginGroup("script")
//	// ... several edits ...
//	h.EndGroup()
//
// Only the first push of a group is recorded; it holds the state before
// the whole group.
package history
