package design

// GridType is the lattice of a grid.
type GridType uint8

// Supported lattices.
const (
	SquareGrid GridType = iota
	HoneycombGrid
)

func (t GridType) String() string {
	if t == HoneycombGrid {
		return "honeycomb"
	}
	return "square"
}

// Grid is a lattice on which helices can be attached.
type Grid struct {
	Type        GridType `json:"type"`
	Position    Vec3     `json:"position"`
	Orientation Quat     `json:"orientation"`
}

// GridPosition is the lattice cell a helix is attached to.
type GridPosition struct {
	Grid int     `json:"grid" yaml:"grid"`
	X    int     `json:"x" yaml:"x"`
	Y    int     `json:"y" yaml:"y"`
	Roll float64 `json:"roll,omitempty" yaml:"roll"`
}

// Helix is a double-helix axis. Helices attached to a grid carry a
// GridPosition and derive their Position from it.
type Helix struct {
	Position     Vec3          `json:"position"`
	Orientation  Quat          `json:"orientation"`
	GridPosition *GridPosition `json:"grid_position,omitempty"`
	Isometry2D   *Isometry2    `json:"isometry2d,omitempty"`
	Roll         float64       `json:"roll,omitempty"`
}

// Clone returns a copy that can be modified freely.
func (h *Helix) Clone() *Helix {
	c := *h
	if h.GridPosition != nil {
		gp := *h.GridPosition
		c.GridPosition = &gp
	}
	if h.Isometry2D != nil {
		iso := *h.Isometry2D
		c.Isometry2D = &iso
	}
	return &c
}
