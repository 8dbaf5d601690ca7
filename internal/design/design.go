package design

import (
	"github.com/benbjohnson/immutable"
)

// Design is an immutable snapshot of a document. Every With* method returns
// a new snapshot that shares all untouched strands, helices and grids with
// its receiver, so holding on to an old Design is cheap and safe while an
// edit produces a new one.
//
// The zero value is an empty design.
type Design struct {
	strands      *immutable.SortedMap[int, *Strand]
	helices      *immutable.SortedMap[int, *Helix]
	grids        *immutable.SortedMap[int, *Grid]
	noPhantoms   *immutable.SortedMap[int, struct{}]
	smallSpheres *immutable.SortedMap[int, struct{}]

	scaffoldID       *int
	scaffoldSequence *string
	scaffoldShift    int

	xovers *XoverRegistry
}

// New returns an empty design.
func New() Design {
	return Design{}
}

func emptyMap[V any]() *immutable.SortedMap[int, V] {
	return immutable.NewSortedMap[int, V](nil)
}

func (d Design) strandMap() *immutable.SortedMap[int, *Strand] {
	if d.strands == nil {
		return emptyMap[*Strand]()
	}
	return d.strands
}

func (d Design) helixMap() *immutable.SortedMap[int, *Helix] {
	if d.helices == nil {
		return emptyMap[*Helix]()
	}
	return d.helices
}

func (d Design) gridMap() *immutable.SortedMap[int, *Grid] {
	if d.grids == nil {
		return emptyMap[*Grid]()
	}
	return d.grids
}

func each[V any](m *immutable.SortedMap[int, V], fn func(int, V) bool) {
	if m == nil {
		return
	}
	itr := m.Iterator()
	for !itr.Done() {
		k, v, ok := itr.Next()
		if !ok || !fn(k, v) {
			return
		}
	}
}

func keys[V any](m *immutable.SortedMap[int, V]) []int {
	var out []int
	each(m, func(k int, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

func maxKey[V any](m *immutable.SortedMap[int, V]) (int, bool) {
	if m == nil {
		return 0, false
	}
	itr := m.Iterator()
	itr.Last()
	k, _, ok := itr.Next()
	return k, ok
}

// Strand returns the strand with the given id.
func (d Design) Strand(id int) (*Strand, bool) {
	if d.strands == nil {
		return nil, false
	}
	return d.strands.Get(id)
}

// StrandIDs returns the strand ids in increasing order.
func (d Design) StrandIDs() []int { return keys(d.strands) }

// StrandCount returns the number of strands.
func (d Design) StrandCount() int {
	if d.strands == nil {
		return 0
	}
	return d.strands.Len()
}

// EachStrand calls fn for every strand in id order until fn returns false.
func (d Design) EachStrand(fn func(id int, s *Strand) bool) { each(d.strands, fn) }

// MaxStrandID returns the largest strand id in use.
func (d Design) MaxStrandID() (int, bool) { return maxKey(d.strands) }

// NextStrandID returns max(existing ids)+1, or 0 for an empty design.
func (d Design) NextStrandID() int {
	if m, ok := d.MaxStrandID(); ok {
		return m + 1
	}
	return 0
}

// WithStrand returns a design where id maps to s.
func (d Design) WithStrand(id int, s *Strand) Design {
	d.strands = d.strandMap().Set(id, s)
	return d
}

// WithoutStrand returns a design without strand id.
func (d Design) WithoutStrand(id int) Design {
	d.strands = d.strandMap().Delete(id)
	return d
}

// Helix returns the helix with the given id.
func (d Design) Helix(id int) (*Helix, bool) {
	if d.helices == nil {
		return nil, false
	}
	return d.helices.Get(id)
}

// HelixIDs returns the helix ids in increasing order.
func (d Design) HelixIDs() []int { return keys(d.helices) }

// EachHelix calls fn for every helix in id order until fn returns false.
func (d Design) EachHelix(fn func(id int, h *Helix) bool) { each(d.helices, fn) }

// NextHelixID returns the id a new helix receives.
func (d Design) NextHelixID() int {
	if m, ok := maxKey(d.helices); ok {
		return m + 1
	}
	return 0
}

// WithHelix returns a design where id maps to h.
func (d Design) WithHelix(id int, h *Helix) Design {
	d.helices = d.helixMap().Set(id, h)
	return d
}

// Grid returns the grid with the given id.
func (d Design) Grid(id int) (*Grid, bool) {
	if d.grids == nil {
		return nil, false
	}
	return d.grids.Get(id)
}

// GridIDs returns the grid ids in increasing order.
func (d Design) GridIDs() []int { return keys(d.grids) }

// NextGridID returns the id a new grid receives.
func (d Design) NextGridID() int {
	if m, ok := maxKey(d.grids); ok {
		return m + 1
	}
	return 0
}

// WithGrid returns a design where id maps to g.
func (d Design) WithGrid(id int, g *Grid) Design {
	d.grids = d.gridMap().Set(id, g)
	return d
}

// ScaffoldID returns the id of the scaffold strand, if any.
func (d Design) ScaffoldID() (int, bool) {
	if d.scaffoldID == nil {
		return 0, false
	}
	return *d.scaffoldID, true
}

// WithScaffoldID sets or clears (id == nil) the scaffold strand.
func (d Design) WithScaffoldID(id *int) Design {
	if id != nil {
		v := *id
		id = &v
	}
	d.scaffoldID = id
	return d
}

// ScaffoldSequence returns the scaffold sequence, if any.
func (d Design) ScaffoldSequence() (string, bool) {
	if d.scaffoldSequence == nil {
		return "", false
	}
	return *d.scaffoldSequence, true
}

// WithScaffoldSequence sets the scaffold sequence and its shift.
func (d Design) WithScaffoldSequence(seq string, shift int) Design {
	d.scaffoldSequence = &seq
	d.scaffoldShift = shift
	return d
}

// ScaffoldShift returns the offset at which the scaffold sequence starts.
func (d Design) ScaffoldShift() int { return d.scaffoldShift }

// PersistentPhantoms reports whether grid keeps its phantom helices visible.
func (d Design) PersistentPhantoms(grid int) bool {
	if d.noPhantoms == nil {
		return true
	}
	_, hidden := d.noPhantoms.Get(grid)
	return !hidden
}

// WithPersistentPhantoms toggles phantom persistence for grid.
func (d Design) WithPersistentPhantoms(grid int, persistent bool) Design {
	m := d.noPhantoms
	if m == nil {
		m = emptyMap[struct{}]()
	}
	if persistent {
		d.noPhantoms = m.Delete(grid)
	} else {
		d.noPhantoms = m.Set(grid, struct{}{})
	}
	return d
}

// SmallSpheres reports whether grid is drawn with small spheres.
func (d Design) SmallSpheres(grid int) bool {
	if d.smallSpheres == nil {
		return false
	}
	_, ok := d.smallSpheres.Get(grid)
	return ok
}

// WithSmallSpheres toggles small spheres for grid.
func (d Design) WithSmallSpheres(grid int, small bool) Design {
	m := d.smallSpheres
	if m == nil {
		m = emptyMap[struct{}]()
	}
	if small {
		d.smallSpheres = m.Set(grid, struct{}{})
	} else {
		d.smallSpheres = m.Delete(grid)
	}
	return d
}

// Xovers returns the crossover registry of the snapshot. It is never nil.
func (d Design) Xovers() *XoverRegistry {
	if d.xovers == nil {
		return NewXoverRegistry()
	}
	return d.xovers
}

// WithXovers replaces the crossover registry.
func (d Design) WithXovers(r *XoverRegistry) Design {
	d.xovers = r
	return d
}
