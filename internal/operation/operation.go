package operation

import (
	"fmt"

	"github.com/dshills/helixedit/internal/design"
)

// Request is anything that can be submitted to the dispatcher.
type Request interface {
	Kind() Kind
}

// Operation is an edit of the design itself.
type Operation interface {
	Request
	isOperation()
}

// RecolorStaples gives every non-scaffold strand a fresh palette color.
type RecolorStaples struct{}

// SetScaffoldSequence sets the sequence read along the scaffold.
type SetScaffoldSequence struct {
	Sequence string `yaml:"sequence"`
	Shift    int    `yaml:"shift"`
}

// SetScaffoldID designates the scaffold strand. A nil ID clears it.
type SetScaffoldID struct {
	ID *int `yaml:"id"`
}

// HelicesToGrid creates a grid fitted to the selected helices and attaches
// them to it.
type HelicesToGrid struct {
	Helices []int `yaml:"helices"`
}

// AddGrid appends a grid descriptor.
type AddGrid struct {
	Grid design.Grid `yaml:"-"`
}

// ChangeColor paints strands. It starts a coloring gesture.
type ChangeColor struct {
	Color   uint32 `yaml:"-"`
	Strands []int  `yaml:"strands"`
}

// SetHelicesPersistence toggles phantom helices on grids.
type SetHelicesPersistence struct {
	Grids      []int `yaml:"grids"`
	Persistent bool  `yaml:"persistent"`
}

// SetSmallSpheres toggles small sphere rendering on grids.
type SetSmallSpheres struct {
	Grids []int `yaml:"grids"`
	Small bool  `yaml:"small"`
}

// SnapHelices moves helices in the flat view so that each pivot lands on
// an integer point after translation.
type SnapHelices struct {
	Pivots      []design.Nucl `yaml:"pivots"`
	Translation design.Vec2   `yaml:"translation"`
}

// SetIsometry places a helix in the flat view.
type SetIsometry struct {
	Helix    int              `yaml:"helix"`
	Isometry design.Isometry2 `yaml:"isometry"`
}

// RotateHelices rotates helices of the flat view around Center. Angle is
// snapped to a multiple of pi/8.
type RotateHelices struct {
	Helices []int       `yaml:"helices"`
	Center  design.Vec2 `yaml:"center"`
	Angle   float64     `yaml:"angle"`
}

// TargetKind selects what a rigid motion applies to.
type TargetKind uint8

// Rigid motion targets.
const (
	TargetDesign TargetKind = iota
	TargetHelices
	TargetGrids
)

// Target is the object of a Translation or Rotation. Snap asks helices to
// be reattached to their grid after the motion.
type Target struct {
	Kind TargetKind
	IDs  []int
	Snap bool
}

// Translation moves helices or grids in space.
type Translation struct {
	Target      Target      `yaml:"-"`
	Translation design.Vec3 `yaml:"translation"`
}

// Rotation rotates helices or grids around Origin.
type Rotation struct {
	Target   Target      `yaml:"-"`
	Rotation design.Quat `yaml:"rotation"`
	Origin   design.Vec3 `yaml:"origin"`
}

// RequestStrandBuilders starts a strand-building gesture on each nucleotide.
type RequestStrandBuilders struct {
	Nucls []design.Nucl `yaml:"nucls"`
}

// MoveBuilders drags every builder of the gesture to position To.
type MoveBuilders struct {
	To int `yaml:"to"`
}

// Cut splits the strand holding Nucl.
type Cut struct {
	Nucl design.Nucl `yaml:"nucl"`
}

// AddGridHelix creates a helix on a grid cell, with a strand on each side
// when Length is positive.
type AddGridHelix struct {
	Position design.GridPosition `yaml:"position"`
	Start    int                 `yaml:"start"`
	Length   int                 `yaml:"length"`
}

// CrossCut cuts Target at Nucl and joins Source to the half holding Nucl.
type CrossCut struct {
	Source       int         `yaml:"source"`
	Target       int         `yaml:"target"`
	Nucl         design.Nucl `yaml:"nucl"`
	Target3Prime bool        `yaml:"target_3prime"`
}

// Xover joins the 3' end of Prime5 to the 5' end of Prime3, or closes the
// strand into a cycle when both ids are equal.
type Xover struct {
	Prime5 int `yaml:"prime5"`
	Prime3 int `yaml:"prime3"`
}

// GeneralXover creates a crossover between two arbitrary nucleotides.
type GeneralXover struct {
	Source design.Nucl `yaml:"source"`
	Target design.Nucl `yaml:"target"`
}

// NewStrand creates a linear strand whose 5' end is Start.
type NewStrand struct {
	Start  design.Nucl `yaml:"start"`
	Length int         `yaml:"length"`
}

// RmStrands deletes strands.
type RmStrands struct {
	Strands []int `yaml:"strands"`
}

// ChangeSequence sets the explicit sequence of a strand.
type ChangeSequence struct {
	Strand   int    `yaml:"strand"`
	Sequence string `yaml:"sequence"`
}

// SetStrandName names a strand. An empty name clears it.
type SetStrandName struct {
	Strand int    `yaml:"strand"`
	Name   string `yaml:"name"`
}

func (RecolorStaples) Kind() Kind        { return KindRecolorStaples }
func (SetScaffoldSequence) Kind() Kind   { return KindSetScaffoldSequence }
func (SetScaffoldID) Kind() Kind         { return KindSetScaffoldID }
func (HelicesToGrid) Kind() Kind         { return KindHelicesToGrid }
func (AddGrid) Kind() Kind               { return KindAddGrid }
func (ChangeColor) Kind() Kind           { return KindChangeColor }
func (SetHelicesPersistence) Kind() Kind { return KindSetHelicesPersistence }
func (SetSmallSpheres) Kind() Kind       { return KindSetSmallSpheres }
func (SnapHelices) Kind() Kind           { return KindSnapHelices }
func (SetIsometry) Kind() Kind           { return KindSetIsometry }
func (RotateHelices) Kind() Kind         { return KindRotateHelices }
func (Translation) Kind() Kind           { return KindTranslation }
func (Rotation) Kind() Kind              { return KindRotation }
func (RequestStrandBuilders) Kind() Kind { return KindRequestStrandBuilders }
func (MoveBuilders) Kind() Kind          { return KindMoveBuilders }
func (Cut) Kind() Kind                   { return KindCut }
func (AddGridHelix) Kind() Kind          { return KindAddGridHelix }
func (CrossCut) Kind() Kind              { return KindCrossCut }
func (Xover) Kind() Kind                 { return KindXover }
func (GeneralXover) Kind() Kind          { return KindGeneralXover }
func (NewStrand) Kind() Kind             { return KindNewStrand }
func (RmStrands) Kind() Kind             { return KindRmStrands }
func (ChangeSequence) Kind() Kind        { return KindChangeSequence }
func (SetStrandName) Kind() Kind         { return KindSetStrandName }

func (RecolorStaples) isOperation()        {}
func (SetScaffoldSequence) isOperation()   {}
func (SetScaffoldID) isOperation()         {}
func (HelicesToGrid) isOperation()         {}
func (AddGrid) isOperation()               {}
func (ChangeColor) isOperation()           {}
func (SetHelicesPersistence) isOperation() {}
func (SetSmallSpheres) isOperation()       {}
func (SnapHelices) isOperation()           {}
func (SetIsometry) isOperation()           {}
func (RotateHelices) isOperation()         {}
func (Translation) isOperation()           {}
func (Rotation) isOperation()              {}
func (RequestStrandBuilders) isOperation() {}
func (MoveBuilders) isOperation()          {}
func (Cut) isOperation()                   {}
func (AddGridHelix) isOperation()          {}
func (CrossCut) isOperation()              {}
func (Xover) isOperation()                 {}
func (GeneralXover) isOperation()          {}
func (NewStrand) isOperation()             {}
func (RmStrands) isOperation()             {}
func (ChangeSequence) isOperation()        {}
func (SetStrandName) isOperation()         {}

func (c Cut) String() string          { return fmt.Sprintf("cut %s", c.Nucl) }
func (x Xover) String() string        { return fmt.Sprintf("xover %d->%d", x.Prime5, x.Prime3) }
func (g GeneralXover) String() string { return fmt.Sprintf("xover %s->%s", g.Source, g.Target) }
