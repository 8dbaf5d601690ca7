package operation

import (
	"fmt"

	"github.com/dshills/helixedit/internal/design"
)

// Pending is a parametrised gesture whose effect is re-derived from the
// gesture's starting design every time its parameters change.
type Pending interface {
	// Effect is the operation that realises the gesture.
	Effect() Operation

	// Description is a human readable summary.
	Description() string

	// Compose merges other into the receiver when both act on the same
	// object. It reports false when they cannot be combined.
	Compose(other Pending) (Pending, bool)
}

// HelixTranslation moves one helix along a local frame.
type HelixTranslation struct {
	Helix           int
	Right, Top, Dir design.Vec3
	X, Y, Z         float64
	Snap            bool
}

// Effect implements Pending.
func (t HelixTranslation) Effect() Operation {
	return Translation{
		Target:      Target{Kind: TargetHelices, IDs: []int{t.Helix}, Snap: t.Snap},
		Translation: frame(t.Right, t.Top, t.Dir, t.X, t.Y, t.Z),
	}
}

// Description implements Pending.
func (t HelixTranslation) Description() string {
	return fmt.Sprintf("Translate helix %d", t.Helix)
}

// Compose implements Pending.
func (t HelixTranslation) Compose(other Pending) (Pending, bool) {
	o, ok := other.(HelixTranslation)
	if !ok || o.Helix != t.Helix {
		return nil, false
	}
	t.X, t.Y, t.Z = t.X+o.X, t.Y+o.Y, t.Z+o.Z
	return t, true
}

// GridTranslation moves one grid along a local frame.
type GridTranslation struct {
	Grid            int
	Right, Top, Dir design.Vec3
	X, Y, Z         float64
}

// Effect implements Pending.
func (t GridTranslation) Effect() Operation {
	return Translation{
		Target:      Target{Kind: TargetGrids, IDs: []int{t.Grid}},
		Translation: frame(t.Right, t.Top, t.Dir, t.X, t.Y, t.Z),
	}
}

// Description implements Pending.
func (t GridTranslation) Description() string {
	return fmt.Sprintf("Translate grid %d", t.Grid)
}

// Compose implements Pending.
func (t GridTranslation) Compose(other Pending) (Pending, bool) {
	o, ok := other.(GridTranslation)
	if !ok || o.Grid != t.Grid {
		return nil, false
	}
	t.X, t.Y, t.Z = t.X+o.X, t.Y+o.Y, t.Z+o.Z
	return t, true
}

// HelixRotation turns one helix around Axis through Origin.
type HelixRotation struct {
	Helix  int
	Origin design.Vec3
	Axis   design.Vec3
	Angle  float64
	Snap   bool
}

// Effect implements Pending.
func (r HelixRotation) Effect() Operation {
	return Rotation{
		Target:   Target{Kind: TargetHelices, IDs: []int{r.Helix}, Snap: r.Snap},
		Rotation: design.AxisAngle(r.Axis, r.Angle),
		Origin:   r.Origin,
	}
}

// Description implements Pending.
func (r HelixRotation) Description() string {
	return fmt.Sprintf("Rotate helix %d", r.Helix)
}

// Compose implements Pending.
func (r HelixRotation) Compose(other Pending) (Pending, bool) {
	o, ok := other.(HelixRotation)
	if !ok || o.Helix != r.Helix || o.Axis != r.Axis {
		return nil, false
	}
	r.Angle += o.Angle
	return r, true
}

// GridRotation turns one grid around Axis through Origin.
type GridRotation struct {
	Grid   int
	Origin design.Vec3
	Axis   design.Vec3
	Angle  float64
}

// Effect implements Pending.
func (r GridRotation) Effect() Operation {
	return Rotation{
		Target:   Target{Kind: TargetGrids, IDs: []int{r.Grid}},
		Rotation: design.AxisAngle(r.Axis, r.Angle),
		Origin:   r.Origin,
	}
}

// Description implements Pending.
func (r GridRotation) Description() string {
	return fmt.Sprintf("Rotate grid %d", r.Grid)
}

// Compose implements Pending.
func (r GridRotation) Compose(other Pending) (Pending, bool) {
	o, ok := other.(GridRotation)
	if !ok || o.Grid != r.Grid || o.Axis != r.Axis {
		return nil, false
	}
	r.Angle += o.Angle
	return r, true
}

// GridHelixCreation places a new empty helix on a grid cell.
type GridHelixCreation struct {
	Grid int
	X, Y int
}

// Effect implements Pending.
func (c GridHelixCreation) Effect() Operation {
	return AddGridHelix{Position: design.GridPosition{Grid: c.Grid, X: c.X, Y: c.Y}}
}

// Description implements Pending.
func (c GridHelixCreation) Description() string {
	return fmt.Sprintf("Create helix on grid %d", c.Grid)
}

// Compose implements Pending. Helix creations never compose.
func (GridHelixCreation) Compose(Pending) (Pending, bool) { return nil, false }

func frame(right, top, dir design.Vec3, x, y, z float64) design.Vec3 {
	return right.Scale(x).Add(top.Scale(y)).Add(dir.Scale(z))
}
