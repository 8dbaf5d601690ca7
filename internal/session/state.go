package session

import (
	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/engine/topology"
	"github.com/dshills/helixedit/internal/operation"
)

// State is the editing mode of a session. The set of variants is closed.
type State interface {
	// Name is a stable snake_case identifier, used in logs and metrics.
	Name() string
	isState()
}

// Normal accepts every operation.
type Normal struct{}

// BuildingStrand is a strand-end drag. Initial is the design right after
// the builders were created; every move is replayed from it.
type BuildingStrand struct {
	Builders     []topology.Builder
	Initial      design.Design
	Initializing bool
}

// ChangingColor is a color-picking gesture.
type ChangingColor struct{}

// WithPendingOp holds a finished gesture whose parameters may still be
// edited.
type WithPendingOp struct {
	Op operation.Pending
}

// ApplyingOperation is a transient gesture. Design is the snapshot the
// gesture started from. Op is nil until a pending operation is attached.
type ApplyingOperation struct {
	Design design.Design
	Op     operation.Pending
}

// PositioningPastingPoint shows the clipboard at a candidate point.
type PositioningPastingPoint struct {
	Point  *design.Nucl
	Pasted []clipboard.Pasted
}

// PositioningDuplicationPoint shows the first copy of a duplication.
type PositioningDuplicationPoint struct {
	Point       *design.Nucl
	Pasted      []clipboard.Pasted
	Duplication *clipboard.Duplication
	Clipboard   *clipboard.Clipboard
}

// WithPendingDuplication can paste the next copy of a duplication series.
type WithPendingDuplication struct {
	Last        design.Nucl
	Duplication clipboard.Duplication
	Clipboard   *clipboard.Clipboard
}

func (Normal) Name() string                      { return "normal" }
func (BuildingStrand) Name() string              { return "building_strand" }
func (ChangingColor) Name() string               { return "changing_color" }
func (WithPendingOp) Name() string               { return "with_pending_op" }
func (ApplyingOperation) Name() string           { return "applying_operation" }
func (PositioningPastingPoint) Name() string     { return "positioning_pasting_point" }
func (PositioningDuplicationPoint) Name() string { return "positioning_duplication_point" }
func (WithPendingDuplication) Name() string      { return "with_pending_duplication" }

func (Normal) isState()                      {}
func (BuildingStrand) isState()              {}
func (ChangingColor) isState()               {}
func (WithPendingOp) isState()               {}
func (ApplyingOperation) isState()           {}
func (PositioningPastingPoint) isState()     {}
func (PositioningDuplicationPoint) isState() {}
func (WithPendingDuplication) isState()      {}

// Compatible reports whether an operation of kind k may be applied in s.
// Copy operations are not subject to this check.
func Compatible(s State, k operation.Kind) bool {
	switch s := s.(type) {
	case Normal, WithPendingOp, WithPendingDuplication, ApplyingOperation:
		return true
	case ChangingColor:
		return k == operation.KindChangeColor
	case BuildingStrand:
		return k == operation.KindMoveBuilders || s.Initializing
	default:
		return false
	}
}

// Stable reports whether s is a resting state: the design it holds is a
// valid undo point and may be backed up.
func Stable(s State) bool {
	switch s.(type) {
	case Normal, WithPendingOp, WithPendingDuplication:
		return true
	default:
		return false
	}
}

// PastingStatus tells whether a session is positioning copies.
type PastingStatus uint8

// Pasting statuses.
const (
	PastingNone PastingStatus = iota
	PastingCopy
	PastingDuplication
)

// Pasting returns the pasting status of s.
func Pasting(s State) PastingStatus {
	switch s.(type) {
	case PositioningPastingPoint:
		return PastingCopy
	case PositioningDuplicationPoint:
		return PastingDuplication
	default:
		return PastingNone
	}
}

// PendingOp returns the pending operation of s, if any.
func PendingOp(s State) operation.Pending {
	switch s := s.(type) {
	case ApplyingOperation:
		return s.Op
	case WithPendingOp:
		return s.Op
	default:
		return nil
	}
}

// PastingPoint returns the candidate pasting point of s, if any.
func PastingPoint(s State) *design.Nucl {
	switch s := s.(type) {
	case PositioningPastingPoint:
		return s.Point
	case PositioningDuplicationPoint:
		return s.Point
	default:
		return nil
	}
}

// Builders returns the strand builders of a building gesture.
func Builders(s State) []topology.Builder {
	if b, ok := s.(BuildingStrand); ok {
		return b.Builders
	}
	return nil
}
