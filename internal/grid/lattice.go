package grid

import (
	"math"

	"github.com/dshills/helixedit/internal/design"
)

// InterHelixDistance is the distance between the axes of two neighbouring
// helices, in nanometers: two helix radii plus the inter-helix gap.
const InterHelixDistance = 2.65

const radius = InterHelixDistance / 2

var sqrt3 = math.Sqrt(3)

// Axis is the helix direction in grid coordinates.
var Axis = design.Vec3{X: 1}

// cellPlane returns the coordinates of cell (x, y) in the grid plane.
func cellPlane(t design.GridType, x, y int) (u, v float64) {
	if t == design.HoneycombGrid {
		u = float64(x) * radius * sqrt3
		v = -3 * radius * float64(y)
		if (x+y)%2 == 0 {
			v -= radius
		}
		return u, v
	}
	return float64(x) * InterHelixDistance, -float64(y) * InterHelixDistance
}

// CellPosition returns the position in space of the axis of a helix on
// cell (x, y) of g.
func CellPosition(g *design.Grid, x, y int) design.Vec3 {
	u, v := cellPlane(g.Type, x, y)
	return g.Position.Add(g.Orientation.Rotate(design.Vec3{Y: v, Z: u}))
}

// NewHelix returns a helix attached to cell (x, y) of grid id.
func NewHelix(g *design.Grid, id, x, y int) *design.Helix {
	return &design.Helix{
		Position:     CellPosition(g, x, y),
		Orientation:  g.Orientation,
		GridPosition: &design.GridPosition{Grid: id, X: x, Y: y},
	}
}

// nearestCell returns the cell of g closest to p, measured in the grid
// plane, and the distance from p to its axis.
func nearestCell(g *design.Grid, p design.Vec3) (x, y int, dist float64) {
	l := g.Orientation.Conj().Rotate(p.Sub(g.Position))
	u, v := l.Z, l.Y

	var cx, cy int
	if g.Type == design.HoneycombGrid {
		cx = int(math.Round(u / (radius * sqrt3)))
		cy = int(math.Round(-v / (3 * radius)))
	} else {
		cx = int(math.Round(u / InterHelixDistance))
		cy = int(math.Round(-v / InterHelixDistance))
	}

	dist = math.Inf(1)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			cu, cv := cellPlane(g.Type, cx+dx, cy+dy)
			if d := math.Hypot(u-cu, v-cv); d < dist {
				x, y, dist = cx+dx, cy+dy, d
			}
		}
	}
	return x, y, dist
}

// aligned reports whether a helix with orientation o runs along the axis
// of g.
func aligned(g *design.Grid, o design.Quat) bool {
	return math.Abs(g.Orientation.Rotate(Axis).Dot(o.Rotate(Axis))) > 0.95
}
