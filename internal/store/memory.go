package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/helixedit/internal/design"
)

// Memory keeps revisions in process. Designs are stored encoded, like the
// SQL stores do, so that a loaded design never aliases a saved one.
type Memory struct {
	mu   sync.RWMutex
	revs map[string][]memRevision
}

type memRevision struct {
	Revision
	payload []byte
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{revs: make(map[string][]memRevision)}
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, name string, d design.Design, label string) (Revision, error) {
	if name == "" {
		return Revision{}, ErrEmptyName
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return Revision{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rev := Revision{
		ID:        uuid.New(),
		Name:      name,
		Number:    len(m.revs[name]) + 1,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}
	m.revs[name] = append(m.revs[name], memRevision{Revision: rev, payload: payload})
	return rev, nil
}

// Latest implements Store.
func (m *Memory) Latest(ctx context.Context, name string) (Revision, error) {
	m.mu.RLock()
	n := len(m.revs[name])
	m.mu.RUnlock()
	if n == 0 {
		return Revision{}, notFound(name, 0)
	}
	return m.Load(ctx, name, n)
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, name string, number int) (Revision, error) {
	m.mu.RLock()
	revs := m.revs[name]
	m.mu.RUnlock()
	if number < 1 || number > len(revs) {
		return Revision{}, notFound(name, number)
	}
	r := revs[number-1]
	rev := r.Revision
	if err := json.Unmarshal(r.payload, &rev.Design); err != nil {
		return Revision{}, err
	}
	return rev, nil
}

// List implements Store.
func (m *Memory) List(_ context.Context, name string) ([]Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Revision, 0, len(m.revs[name]))
	for _, r := range m.revs[name] {
		out = append(out, r.Revision)
	}
	return out, nil
}

// Names implements Store.
func (m *Memory) Names(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.revs))
	for n := range m.revs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
