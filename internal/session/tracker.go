package session

import "sync"

// ChangeCallback is called when the state variant changes.
type ChangeCallback func(from, to State)

// Tracker follows the session state of an editor and tells subscribers
// when its variant changes.
type Tracker struct {
	mu sync.RWMutex

	current State

	// callbacks are notified when the variant changes. Updates that keep
	// the variant, such as moving a pasting point, are silent.
	callbacks []ChangeCallback
}

// NewTracker returns a tracker in the Normal state.
func NewTracker() *Tracker {
	return &Tracker{current: Normal{}}
}

// Current returns the current state.
func (t *Tracker) Current() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Set replaces the current state and reports whether its variant changed.
// Callbacks run outside the lock.
func (t *Tracker) Set(s State) bool {
	t.mu.Lock()
	old := t.current
	t.current = s
	if old.Name() == s.Name() {
		t.mu.Unlock()
		return false
	}
	callbacks := make([]ChangeCallback, len(t.callbacks))
	copy(callbacks, t.callbacks)
	t.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(old, s)
		}
	}
	return true
}

// OnChange registers a callback for state changes.
// Returns a function to unregister the callback.
func (t *Tracker) OnChange(cb ChangeCallback) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.callbacks = append(t.callbacks, cb)
	index := len(t.callbacks) - 1

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if index < len(t.callbacks) {
			t.callbacks[index] = nil
		}
	}
}
