package grid

import (
	"fmt"

	"github.com/dshills/helixedit/internal/design"
)

// snapTolerance is how far from a lattice point a helix may sit and still
// be considered on it.
const snapTolerance = radius / 2

type cell struct {
	grid, x, y int
}

// Manager indexes the lattice cells occupied by the helices of a design.
// It is cheap to build and is rebuilt for every edit; the methods that
// return a new design keep the index in sync with what they return.
type Manager struct {
	grids map[int]*design.Grid
	cells map[cell]int
	pos   map[int]design.GridPosition
}

// NewManager indexes d.
func NewManager(d design.Design) *Manager {
	m := &Manager{
		grids: make(map[int]*design.Grid),
		cells: make(map[cell]int),
		pos:   make(map[int]design.GridPosition),
	}
	for _, id := range d.GridIDs() {
		g, _ := d.Grid(id)
		m.grids[id] = g
	}
	d.EachHelix(func(id int, h *design.Helix) bool {
		if gp := h.GridPosition; gp != nil {
			m.cells[cell{gp.Grid, gp.X, gp.Y}] = id
			m.pos[id] = *gp
		}
		return true
	})
	return m
}

// Grid returns the descriptor of grid id.
func (m *Manager) Grid(id int) (*design.Grid, error) {
	g, ok := m.grids[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrGridDoesNotExist, id)
	}
	return g, nil
}

// PosToHelix returns the helix on cell (x, y) of grid.
func (m *Manager) PosToHelix(grid, x, y int) (int, bool) {
	h, ok := m.cells[cell{grid, x, y}]
	return h, ok
}

// GridPosition returns the cell of helix h.
func (m *Manager) GridPosition(h int) (design.GridPosition, bool) {
	p, ok := m.pos[h]
	return p, ok
}

func (m *Manager) occupy(h int, p design.GridPosition) {
	m.cells[cell{p.Grid, p.X, p.Y}] = h
	m.pos[h] = p
}

func (m *Manager) release(h int) {
	if p, ok := m.pos[h]; ok {
		delete(m.cells, cell{p.Grid, p.X, p.Y})
		delete(m.pos, h)
	}
}

// AddHelix creates a helix on a free cell and returns its id.
func (m *Manager) AddHelix(d design.Design, p design.GridPosition) (design.Design, int, error) {
	if other, used := m.PosToHelix(p.Grid, p.X, p.Y); used {
		return d, 0, fmt.Errorf("%w: grid %d (%d, %d) holds helix %d",
			ErrGridPositionAlreadyUsed, p.Grid, p.X, p.Y, other)
	}
	g, err := m.Grid(p.Grid)
	if err != nil {
		return d, 0, err
	}
	id := d.NextHelixID()
	h := NewHelix(g, p.Grid, p.X, p.Y)
	m.occupy(id, *h.GridPosition)
	return d.WithHelix(id, h), id, nil
}

// Reattach snaps every helix in ids to the nearest free cell of the grid
// it was attached to. Cells held by the moving helices themselves count
// as free. It reports false, and returns d unchanged, when one of them
// lands too far from a lattice point, is no longer aligned with the grid
// or collides with another helix.
func (m *Manager) Reattach(d design.Design, ids []int, preserveRoll bool) (design.Design, bool) {
	saved := make(map[int]design.GridPosition, len(ids))
	for _, id := range ids {
		if p, ok := m.pos[id]; ok {
			saved[id] = p
		}
		m.release(id)
	}
	restore := func() {
		for _, id := range ids {
			m.release(id)
		}
		for id, p := range saved {
			m.occupy(id, p)
		}
	}

	out := d
	for _, id := range ids {
		next, ok := m.reattachOne(out, id, saved, preserveRoll)
		if !ok {
			restore()
			return d, false
		}
		out = next
	}
	return out, true
}

// ReattachHelix snaps a single helix. See Reattach.
func (m *Manager) ReattachHelix(d design.Design, id int, preserveRoll bool) (design.Design, bool) {
	return m.Reattach(d, []int{id}, preserveRoll)
}

func (m *Manager) reattachOne(d design.Design, id int, saved map[int]design.GridPosition, preserveRoll bool) (design.Design, bool) {
	h, ok := d.Helix(id)
	if !ok || h.GridPosition == nil {
		return d, false
	}
	gid := h.GridPosition.Grid
	g, ok := m.grids[gid]
	if !ok || !aligned(g, h.Orientation) {
		return d, false
	}
	x, y, dist := nearestCell(g, h.Position)
	if dist > snapTolerance {
		return d, false
	}
	if _, used := m.PosToHelix(gid, x, y); used {
		return d, false
	}

	gp := design.GridPosition{Grid: gid, X: x, Y: y}
	if preserveRoll {
		if old, ok := saved[id]; ok {
			gp.Roll = old.Roll
		}
	}
	nh := h.Clone()
	nh.Position = CellPosition(g, x, y)
	nh.Orientation = g.Orientation
	nh.GridPosition = &gp
	m.occupy(id, gp)
	return d.WithHelix(id, nh), true
}

// MakeGridFromHelices fits a new grid to helices, trying a square lattice
// first and a honeycomb one second, and attaches every helix to it. The
// grid is anchored on the first helix.
func (m *Manager) MakeGridFromHelices(d design.Design, helices []int) (design.Design, error) {
	if len(helices) < MinHelicesForGrid {
		return d, fmt.Errorf("%w: got %d, need %d", ErrNotEnoughHelices, len(helices), MinHelicesForGrid)
	}
	hs := make([]*design.Helix, len(helices))
	for i, id := range helices {
		h, ok := d.Helix(id)
		if !ok {
			return d, fmt.Errorf("%w: %d", ErrHelixDoesNotExist, id)
		}
		hs[i] = h
	}

	for _, typ := range []design.GridType{design.SquareGrid, design.HoneycombGrid} {
		g := &design.Grid{Type: typ, Orientation: hs[0].Orientation}
		u, v := cellPlane(typ, 0, 0)
		g.Position = hs[0].Position.Sub(g.Orientation.Rotate(design.Vec3{Y: v, Z: u}))

		cells, ok := fit(g, hs)
		if !ok {
			continue
		}
		gid := d.NextGridID()
		out := d.WithGrid(gid, g)
		m.grids[gid] = g
		for i, id := range helices {
			m.release(id)
			c := cells[i]
			nh := hs[i].Clone()
			nh.Position = CellPosition(g, c.x, c.y)
			nh.Orientation = g.Orientation
			nh.GridPosition = &design.GridPosition{Grid: gid, X: c.x, Y: c.y}
			m.occupy(id, *nh.GridPosition)
			out = out.WithHelix(id, nh)
		}
		return out, nil
	}
	return d, fmt.Errorf("%w: helices %v do not fit a lattice", ErrGridPositionAlreadyUsed, helices)
}

func fit(g *design.Grid, hs []*design.Helix) ([]cell, bool) {
	cells := make([]cell, len(hs))
	used := make(map[cell]bool, len(hs))
	for i, h := range hs {
		if !aligned(g, h.Orientation) {
			return nil, false
		}
		x, y, dist := nearestCell(g, h.Position)
		c := cell{x: x, y: y}
		if dist > snapTolerance || used[c] {
			return nil, false
		}
		used[c] = true
		cells[i] = c
	}
	return cells, true
}

// Edge is the lattice offset from one helix to another on the same grid.
type Edge struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Edge returns the offset from helix from to helix to. A helix has a zero
// edge to itself whether or not it is on a grid.
func (m *Manager) Edge(from, to int) (Edge, error) {
	if from == to {
		return Edge{}, nil
	}
	a, ok := m.pos[from]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %d", ErrHelixHasNoGridPosition, from)
	}
	b, ok := m.pos[to]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %d", ErrHelixHasNoGridPosition, to)
	}
	if a.Grid != b.Grid {
		return Edge{}, fmt.Errorf("%w: helix %d is on grid %d, helix %d on grid %d",
			ErrCouldNotMakeEdge, from, a.Grid, to, b.Grid)
	}
	return Edge{DX: b.X - a.X, DY: b.Y - a.Y}, nil
}

// Translate returns the helix reached by following e from helix h.
func (m *Manager) Translate(h int, e Edge) (int, bool) {
	if e == (Edge{}) {
		return h, true
	}
	p, ok := m.pos[h]
	if !ok {
		return 0, false
	}
	return m.PosToHelix(p.Grid, p.X+e.DX, p.Y+e.DY)
}
