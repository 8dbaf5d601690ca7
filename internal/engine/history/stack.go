package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// Entry is one undo or redo step.
type Entry[T any] struct {
	ID        uuid.UUID
	Label     string
	Timestamp time.Time
	State     T
}

// Info describes an entry without its state.
type Info struct {
	ID        uuid.UUID
	Label     string
	Timestamp time.Time
}

func (e Entry[T]) info() Info {
	return Info{ID: e.ID, Label: e.Label, Timestamp: e.Timestamp}
}

// History manages the undo and redo stacks of one document.
type History[T any] struct {
	mu sync.Mutex

	undoStack []Entry[T]
	redoStack []Entry[T]

	// Grouping state
	grouping  bool
	groupName string
	groupUsed bool

	maxEntries int
}

// New creates a history holding at most maxEntries undo steps.
func New[T any](maxEntries int) *History[T] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History[T]{maxEntries: maxEntries}
}

// Entry wraps state in a new entry.
func (h *History[T]) Entry(label string, state T) Entry[T] {
	return Entry[T]{ID: uuid.New(), Label: label, Timestamp: time.Now(), State: state}
}

// Push records state as the latest undo point and clears the redo stack.
// Inside a group only the first push is recorded.
func (h *History[T]) Push(label string, state T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil
	if h.grouping {
		if h.groupUsed {
			return
		}
		h.groupUsed = true
		if h.groupName != "" {
			label = h.groupName
		}
	}
	h.undoStack = append(h.undoStack, h.Entry(label, state))
	h.trimLocked()
}

func (h *History[T]) trimLocked() {
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = append([]Entry[T](nil), h.undoStack[excess:]...)
	}
}

// PopUndo removes and returns the latest undo point.
func (h *History[T]) PopUndo() (Entry[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Entry[T]{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	return e, nil
}

// PopRedo removes and returns the latest redo point.
func (h *History[T]) PopRedo() (Entry[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Entry[T]{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	return e, nil
}

// PushRedo records e as the latest redo point.
func (h *History[T]) PushRedo(e Entry[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redoStack = append(h.redoStack, e)
}

// PushUndoKeepRedo records e as the latest undo point without touching
// the redo stack, which is what a redo does.
func (h *History[T]) PushUndoKeepRedo(e Entry[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = append(h.undoStack, e)
	h.trimLocked()
}

// CanUndo returns true if undo is available.
func (h *History[T]) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History[T]) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History[T]) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History[T]) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// UndoInfo lists the undo stack, oldest first.
func (h *History[T]) UndoInfo() []Info {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.undoStack)
}

// RedoInfo lists the redo stack, oldest first.
func (h *History[T]) RedoInfo() []Info {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.redoStack)
}

func infos[T any](stack []Entry[T]) []Info {
	result := make([]Info, len(stack))
	for i, e := range stack {
		result[i] = e.info()
	}
	return result
}

// PeekUndo describes the next undo step without removing it.
func (h *History[T]) PeekUndo() (Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return Info{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// Clear removes all undo/redo history.
func (h *History[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupUsed = false
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History[T]) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the maximum number of undo entries.
func (h *History[T]) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
