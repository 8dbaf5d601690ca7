package design

import "sort"

// XoverRegistry is a bijection between crossover ids and the bonds they
// label. It is rebuilt from scratch by Reidentify at every edit, carrying
// forward the next fresh id, and is treated as read-only once attached to
// a Design.
type XoverRegistry struct {
	byID   map[int]Bond
	byBond map[Bond]int
	nextID int
}

// NewXoverRegistry returns an empty registry.
func NewXoverRegistry() *XoverRegistry {
	return &XoverRegistry{byID: map[int]Bond{}, byBond: map[Bond]int{}}
}

// successor returns an empty registry whose ids continue after r's.
func (r *XoverRegistry) successor() *XoverRegistry {
	next := NewXoverRegistry()
	next.nextID = r.nextID
	return next
}

// Insert registers b and returns its id. A bond already present keeps its id.
func (r *XoverRegistry) Insert(b Bond) int {
	if id, ok := r.byBond[b]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.byID[id] = b
	r.byBond[b] = id
	return id
}

// InsertAt registers b under id. If id is already taken by another bond a
// fresh id is allocated instead; the id actually used is returned.
func (r *XoverRegistry) InsertAt(b Bond, id int) int {
	if existing, ok := r.byBond[b]; ok {
		return existing
	}
	if _, taken := r.byID[id]; taken || id < 0 {
		return r.Insert(b)
	}
	r.byID[id] = b
	r.byBond[b] = id
	if id >= r.nextID {
		r.nextID = id + 1
	}
	return id
}

// ID returns the id of b.
func (r *XoverRegistry) ID(b Bond) (int, bool) {
	id, ok := r.byBond[b]
	return id, ok
}

// Bond returns the bond labelled id.
func (r *XoverRegistry) Bond(id int) (Bond, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// Len returns the number of registered crossovers.
func (r *XoverRegistry) Len() int { return len(r.byID) }

// NextID returns the id the next new crossover receives.
func (r *XoverRegistry) NextID() int { return r.nextID }

// XoverEntry is one line of the registry.
type XoverEntry struct {
	ID   int  `json:"id"`
	Bond Bond `json:"bond"`
}

// Entries lists the registry in id order.
func (r *XoverRegistry) Entries() []XoverEntry {
	out := make([]XoverEntry, 0, len(r.byID))
	for id, b := range r.byID {
		out = append(out, XoverEntry{ID: id, Bond: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
