package dispatcher

import (
	"fmt"

	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/operation"
	"github.com/dshills/helixedit/internal/session"
)

// ApplyCopyOperation applies a clipboard operation to d.
//
// Copying and starting a duplication only touch the controller. Moving the
// pasting point replaces the design with itself so that the candidates
// get redrawn. Pasting and duplicating always push.
func (c Controller) ApplyCopyOperation(d design.Design, op operation.CopyOperation) (Outcome, Controller, error) {
	next := c
	next.state = c.State()
	noop := Outcome{Kind: NoOp, Design: d}

	switch op := op.(type) {
	case operation.CopyStrands:
		cb, err := clipboard.New(d, op.Strands)
		if err != nil {
			return Outcome{}, c, err
		}
		next.clipboard = cb
		return noop, next, nil

	case operation.PositionPastingPoint:
		if c.pastingPointIs(op.Nucl) {
			return noop, c, nil
		}
		if err := next.positionCopies(d, op.Nucl); err != nil {
			return Outcome{}, c, err
		}
		return Outcome{Kind: Replace, Design: d}, next, nil

	case operation.InitStrandsDuplication:
		cb, err := clipboard.New(d, op.Strands)
		if err != nil {
			return Outcome{}, c, err
		}
		next.clipboard = cb
		if err := next.transition(session.StartPositioningDuplication{Clipboard: cb}); err != nil {
			return Outcome{}, c, err
		}
		return noop, next, nil

	case operation.Duplicate:
		out, err := next.duplicate(d)
		if err != nil {
			return Outcome{}, c, err
		}
		return Outcome{Kind: Push, Design: out}, next, nil

	case operation.Paste:
		out, err := next.paste(d)
		if err != nil {
			return Outcome{}, c, err
		}
		return c.outcome(out).undoable(), next, nil
	}
	return Outcome{}, c, fmt.Errorf("%w: %s", ErrNotImplemented, op.Kind())
}

// pastingPointIs reports whether copies are being positioned at n already.
func (c Controller) pastingPointIs(n *design.Nucl) bool {
	if session.Pasting(c.State()) == session.PastingNone {
		return false
	}
	p := session.PastingPoint(c.State())
	if p == nil || n == nil {
		return p == nil && n == nil
	}
	return *p == *n
}

func (c *Controller) positionCopies(d design.Design, point *design.Nucl) error {
	cb := c.clipboard
	dup, duplicating := c.state.(session.PositioningDuplicationPoint)
	if duplicating {
		cb = dup.Clipboard
	}

	e := session.StartPositioningPaste{Point: point}
	if point != nil {
		pasted, err := cb.PositionCopies(d, *point)
		if err != nil {
			return err
		}
		e.Pasted = pasted
		if duplicating {
			offset, err := cb.DuplicationTo(d, *point)
			if err != nil {
				return err
			}
			e.Duplication = &offset
		}
	}
	return c.transition(e)
}

func (c *Controller) paste(d design.Design) (design.Design, error) {
	switch s := c.state.(type) {
	case session.PositioningPastingPoint:
		if s.Point == nil {
			return d, fmt.Errorf("%w: no pasting point", clipboard.ErrCannotPasteHere)
		}
		out, _, err := clipboard.Paste(d, s.Pasted)
		if err != nil {
			return d, err
		}
		return out, c.transition(session.Reset{})
	case session.PositioningDuplicationPoint:
		return c.duplicate(d)
	default:
		return d, fmt.Errorf("%w: nothing to paste while %s", ErrIncompatibleState, s.Name())
	}
}

// duplicate pastes the first copy of a duplication, or the next one of a
// series.
func (c *Controller) duplicate(d design.Design) (design.Design, error) {
	switch s := c.state.(type) {
	case session.PositioningDuplicationPoint:
		if s.Point == nil || s.Duplication == nil {
			return d, fmt.Errorf("%w: no duplication point", clipboard.ErrCannotPasteHere)
		}
		out, _, err := clipboard.Paste(d, s.Pasted)
		if err != nil {
			return d, err
		}
		return out, c.transition(session.Duplicated{Last: *s.Point, Duplication: *s.Duplication, Clipboard: s.Clipboard})

	case session.WithPendingDuplication:
		point, ok := s.Duplication.Next(d, s.Last)
		if !ok {
			return d, fmt.Errorf("%w: duplication leaves the grid", clipboard.ErrCannotPasteHere)
		}
		pasted, err := s.Clipboard.PositionCopies(d, point)
		if err != nil {
			return d, err
		}
		out, _, err := clipboard.Paste(d, pasted)
		if err != nil {
			return d, err
		}
		return out, c.transition(session.Duplicated{Last: point, Duplication: s.Duplication, Clipboard: s.Clipboard})

	default:
		return d, fmt.Errorf("%w: nothing to duplicate while %s", ErrIncompatibleState, s.Name())
	}
}
