package history

// BeginGroup starts folding pushes into a single undo step named name.
// Nested calls are ignored.
func (h *History[T]) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupUsed = false
}

// EndGroup finishes a group.
func (h *History[T]) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupName = ""
	h.groupUsed = false
}

// IsGrouping returns true if currently in a group.
func (h *History[T]) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Checkpoint is a copy of both stacks that can be returned to.
type Checkpoint[T any] struct {
	undo []Entry[T]
	redo []Entry[T]
}

// CreateCheckpoint records the current undo and redo stacks.
func (h *History[T]) CreateCheckpoint() Checkpoint[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint[T]{
		undo: append([]Entry[T](nil), h.undoStack...),
		redo: append([]Entry[T](nil), h.redoStack...),
	}
}

// Rollback restores both stacks to cp. Entries pushed since, entries
// trimmed since and a redo stack cleared since are all undone.
func (h *History[T]) Rollback(cp Checkpoint[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = append([]Entry[T](nil), cp.undo...)
	h.redoStack = append([]Entry[T](nil), cp.redo...)
}

// Transaction runs fn inside a group. The group is closed whether or not
// fn fails; the caller decides what to do with the state on error.
func (h *History[T]) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	defer h.EndGroup()
	return fn()
}
