package grid

import (
	"math"

	"github.com/dshills/helixedit/internal/design"
)

func mutateHelices(d design.Design, ids []int, fn func(h *design.Helix)) design.Design {
	for _, id := range ids {
		h, ok := d.Helix(id)
		if !ok {
			continue
		}
		nh := h.Clone()
		fn(nh)
		d = d.WithHelix(id, nh)
	}
	return d
}

// TranslateHelices moves helices by t. Missing ids are skipped. The grid
// position is left as is so that Reattach knows which grid to snap to;
// call Detach when the move is final.
func TranslateHelices(d design.Design, ids []int, t design.Vec3) design.Design {
	return mutateHelices(d, ids, func(h *design.Helix) {
		h.Position = h.Position.Add(t)
	})
}

// RotateHelices rotates helices by q around origin. See TranslateHelices
// for the grid position.
func RotateHelices(d design.Design, ids []int, q design.Quat, origin design.Vec3) design.Design {
	return mutateHelices(d, ids, func(h *design.Helix) {
		h.Position = origin.Add(q.Rotate(h.Position.Sub(origin)))
		h.Orientation = q.Mul(h.Orientation)
	})
}

// Detach removes helices from their grid.
func Detach(d design.Design, ids []int) design.Design {
	return mutateHelices(d, ids, func(h *design.Helix) {
		h.GridPosition = nil
	})
}

func mutateGrids(d design.Design, ids []int, fn func(g *design.Grid)) design.Design {
	moved := make(map[int]*design.Grid, len(ids))
	for _, id := range ids {
		g, ok := d.Grid(id)
		if !ok {
			continue
		}
		ng := *g
		fn(&ng)
		d = d.WithGrid(id, &ng)
		moved[id] = &ng
	}
	if len(moved) == 0 {
		return d
	}
	var attached []int
	d.EachHelix(func(id int, h *design.Helix) bool {
		if h.GridPosition != nil && moved[h.GridPosition.Grid] != nil {
			attached = append(attached, id)
		}
		return true
	})
	return mutateHelices(d, attached, func(h *design.Helix) {
		g := moved[h.GridPosition.Grid]
		h.Position = CellPosition(g, h.GridPosition.X, h.GridPosition.Y)
		h.Orientation = g.Orientation
	})
}

// TranslateGrids moves grids, and the helices attached to them, by t.
func TranslateGrids(d design.Design, ids []int, t design.Vec3) design.Design {
	return mutateGrids(d, ids, func(g *design.Grid) {
		g.Position = g.Position.Add(t)
	})
}

// RotateGrids rotates grids, and the helices attached to them, by q
// around origin.
func RotateGrids(d design.Design, ids []int, q design.Quat, origin design.Vec3) design.Design {
	return mutateGrids(d, ids, func(g *design.Grid) {
		g.Position = origin.Add(q.Rotate(g.Position.Sub(origin)))
		g.Orientation = q.Mul(g.Orientation)
	})
}

// NuclPos2D returns where n is drawn in the flat view. Helices without an
// isometry are not drawn.
func NuclPos2D(d design.Design, n design.Nucl) (design.Vec2, bool) {
	h, ok := d.Helix(n.Helix)
	if !ok || h.Isometry2D == nil {
		return design.Vec2{}, false
	}
	local := design.Vec2{X: float64(n.Position)}
	if !n.Forward {
		local.Y = 1
	}
	return h.Isometry2D.Apply(local), true
}

// SnapPivots translates, in the flat view, the helix of each pivot so
// that the pivot moved by t lands on integer coordinates.
func SnapPivots(d design.Design, pivots []design.Nucl, t design.Vec2) design.Design {
	out := d
	for _, p := range pivots {
		old, ok := NuclPos2D(d, p)
		if !ok {
			continue
		}
		target := old.Add(t)
		target = design.Vec2{X: math.Round(target.X), Y: math.Round(target.Y)}
		delta := target.Sub(old)
		out = mutateHelices(out, []int{p.Helix}, func(h *design.Helix) {
			h.Isometry2D.Translation = h.Isometry2D.Translation.Add(delta)
		})
	}
	return out
}

// RotateFlat rotates helices of the flat view by angle around center.
func RotateFlat(d design.Design, ids []int, center design.Vec2, angle float64) design.Design {
	return mutateHelices(d, ids, func(h *design.Helix) {
		if h.Isometry2D == nil {
			return
		}
		iso := h.Isometry2D
		iso.Translation = iso.Translation.Sub(center).Rotate(angle).Add(center)
		iso.Angle += angle
	})
}
