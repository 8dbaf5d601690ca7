package session

import (
	"errors"
	"fmt"

	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/engine/topology"
	"github.com/dshills/helixedit/internal/operation"
)

// ErrIncompatibleState is returned when an operation or an event does not
// make sense in the current state. Callers usually finish the current
// operation and retry.
var ErrIncompatibleState = errors.New("session: incompatible state")

// Event drives a state change.
type Event interface {
	isEvent()
}

// FinishOperation ends the current gesture. A pending operation, if any,
// survives as WithPendingOp.
type FinishOperation struct{}

// Reset drops every gesture and goes back to Normal.
type Reset struct{}

// StartBuilding enters BuildingStrand.
type StartBuilding struct {
	Builders []topology.Builder
	Initial  design.Design
}

// BuildersMoved marks the end of the initialization of a building gesture.
type BuildersMoved struct{}

// StartColoring enters ChangingColor.
type StartColoring struct{}

// StartApplying enters ApplyingOperation from Design. It is a no-op when
// an operation is already being applied.
type StartApplying struct {
	Design design.Design
}

// PendingUpdated attaches Op to the current gesture.
type PendingUpdated struct {
	Op operation.Pending
}

// StartPositioningPaste moves the candidate pasting point. Duplication is
// only used while positioning a duplication.
type StartPositioningPaste struct {
	Point       *design.Nucl
	Pasted      []clipboard.Pasted
	Duplication *clipboard.Duplication
}

// StartPositioningDuplication enters PositioningDuplicationPoint.
type StartPositioningDuplication struct {
	Clipboard *clipboard.Clipboard
}

// Duplicated records a pasted duplicate, enabling the next one.
type Duplicated struct {
	Last        design.Nucl
	Duplication clipboard.Duplication
	Clipboard   *clipboard.Clipboard
}

func (FinishOperation) isEvent()             {}
func (Reset) isEvent()                       {}
func (StartBuilding) isEvent()               {}
func (BuildersMoved) isEvent()               {}
func (StartColoring) isEvent()               {}
func (StartApplying) isEvent()               {}
func (PendingUpdated) isEvent()              {}
func (StartPositioningPaste) isEvent()       {}
func (StartPositioningDuplication) isEvent() {}
func (Duplicated) isEvent()                  {}

// Transition returns the state reached from s on e. On error the returned
// state is s.
func Transition(s State, e Event) (State, error) {
	switch e := e.(type) {
	case FinishOperation:
		if op := PendingOp(s); op != nil {
			return WithPendingOp{Op: op}, nil
		}
		return Normal{}, nil

	case Reset:
		return Normal{}, nil

	case StartBuilding:
		return BuildingStrand{Builders: e.Builders, Initial: e.Initial, Initializing: true}, nil

	case BuildersMoved:
		b, ok := s.(BuildingStrand)
		if !ok {
			return s, incompatible(s, e)
		}
		b.Initializing = false
		return b, nil

	case StartColoring:
		return ChangingColor{}, nil

	case StartApplying:
		if _, ok := s.(ApplyingOperation); ok {
			return s, nil
		}
		return ApplyingOperation{Design: e.Design}, nil

	case PendingUpdated:
		switch s := s.(type) {
		case ApplyingOperation:
			s.Op = e.Op
			return s, nil
		case WithPendingOp:
			s.Op = e.Op
			return s, nil
		default:
			return s, nil
		}

	case StartPositioningPaste:
		switch s := s.(type) {
		case PositioningPastingPoint, Normal, WithPendingOp:
			return PositioningPastingPoint{Point: e.Point, Pasted: e.Pasted}, nil
		case PositioningDuplicationPoint:
			s.Point = e.Point
			s.Pasted = e.Pasted
			s.Duplication = e.Duplication
			return s, nil
		default:
			return s, incompatible(s, e)
		}

	case StartPositioningDuplication:
		return PositioningDuplicationPoint{Clipboard: e.Clipboard}, nil

	case Duplicated:
		return WithPendingDuplication{Last: e.Last, Duplication: e.Duplication, Clipboard: e.Clipboard}, nil
	}
	return s, incompatible(s, e)
}

func incompatible(s State, e Event) error {
	return fmt.Errorf("%w: %T in %s", ErrIncompatibleState, e, s.Name())
}
