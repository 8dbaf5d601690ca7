package dispatcher

import (
	"fmt"

	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/operation"
	"github.com/dshills/helixedit/internal/session"
)

// Controller is the interaction state of an editing session. It is a
// value: every method returns the next controller and leaves its receiver
// untouched, so a failed operation simply keeps the old one.
type Controller struct {
	state     session.State
	colorIdx  int
	clipboard *clipboard.Clipboard
}

// New returns a controller in the Normal state.
func New() Controller {
	return Controller{state: session.Normal{}}
}

// State returns the session state.
func (c Controller) State() session.State {
	if c.state == nil {
		return session.Normal{}
	}
	return c.state
}

// ColorIndex is the number of staple colors handed out so far.
func (c Controller) ColorIndex() int { return c.colorIdx }

// ClipboardSize is the number of strands in the clipboard.
func (c Controller) ClipboardSize() int { return c.clipboard.Size() }

// PastingStatus tells whether copies are being positioned.
func (c Controller) PastingStatus() session.PastingStatus { return session.Pasting(c.State()) }

// CanIterateDuplication reports whether Duplicate can paste another copy
// of the last duplication.
func (c Controller) CanIterateDuplication() bool {
	_, ok := c.State().(session.WithPendingDuplication)
	return ok
}

// PastedStrands returns the candidate copies being positioned.
func (c Controller) PastedStrands() []clipboard.Pasted {
	switch s := c.State().(type) {
	case session.PositioningPastingPoint:
		return s.Pasted
	case session.PositioningDuplicationPoint:
		return s.Pasted
	default:
		return nil
	}
}

// Notify feeds a session event to the controller.
func (c Controller) Notify(e session.Event) (Controller, error) {
	s, err := session.Transition(c.State(), e)
	if err != nil {
		return c, err
	}
	c.state = s
	return c, nil
}

// ApplyOperation applies op to d. On error the design and the receiver
// stay valid and unchanged.
func (c Controller) ApplyOperation(d design.Design, op operation.Operation) (Outcome, Controller, error) {
	if !session.Compatible(c.State(), op.Kind()) {
		return Outcome{}, c, fmt.Errorf("%w: %s while %s", ErrIncompatibleState, op.Kind(), c.State().Name())
	}
	next := c
	next.state = c.State()
	out, err := next.apply(d, op)
	if err != nil {
		return Outcome{}, c, err
	}
	return c.outcome(out), next, nil
}

// UpdatePendingOperation applies the effect of a gesture and attaches the
// gesture to the session so that it can be edited or finished later.
func (c Controller) UpdatePendingOperation(d design.Design, p operation.Pending) (Outcome, Controller, error) {
	out, next, err := c.ApplyOperation(d, p.Effect())
	if err != nil {
		return out, c, err
	}
	if err := next.transition(session.PendingUpdated{Op: p}); err != nil {
		return Outcome{}, c, err
	}
	return out, next, nil
}

// outcome classifies d by the state the controller was in before the edit.
func (c Controller) outcome(d design.Design) Outcome {
	if session.Stable(c.State()) {
		return Outcome{Kind: Push, Design: d}
	}
	return Outcome{Kind: Replace, Design: d}
}

func (c *Controller) transition(e session.Event) error {
	s, err := session.Transition(c.state, e)
	if err != nil {
		return err
	}
	c.state = s
	return nil
}

// gestureBase returns the design a gesture derives its result from,
// entering ApplyingOperation when no gesture is in progress.
func (c *Controller) gestureBase(d design.Design) (design.Design, error) {
	if a, ok := c.state.(session.ApplyingOperation); ok {
		return a.Design, nil
	}
	if err := c.transition(session.StartApplying{Design: d}); err != nil {
		return d, err
	}
	return d, nil
}

func (c *Controller) newColor() uint32 {
	color := design.StapleColor(c.colorIdx)
	c.colorIdx++
	return color
}
