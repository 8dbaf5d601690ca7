package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/operation"
	"github.com/dshills/helixedit/internal/session"
)

func mustCopy(t *testing.T, c Controller, d design.Design, op operation.CopyOperation) (Outcome, Controller) {
	t.Helper()
	out, next, err := c.ApplyCopyOperation(d, op)
	require.NoError(t, err)
	return out, next
}

func at(n design.Nucl) *design.Nucl { return &n }

func TestCopyAndPaste(t *testing.T) {
	d := twoHelices(t)

	out, c := mustCopy(t, New(), d, operation.CopyStrands{Strands: []int{0}})
	assert.Equal(t, NoOp, out.Kind)
	assert.Equal(t, 1, c.ClipboardSize())
	assert.Equal(t, session.PastingNone, c.PastingStatus())

	out, c = mustCopy(t, c, d, operation.PositionPastingPoint{})
	assert.Equal(t, Replace, out.Kind)
	assert.Equal(t, session.PastingCopy, c.PastingStatus())
	assert.Empty(t, c.PastedStrands())

	out, _ = mustCopy(t, c, d, operation.PositionPastingPoint{})
	assert.Equal(t, NoOp, out.Kind, "same point")

	out, c = mustCopy(t, c, d, operation.PositionPastingPoint{Nucl: at(nt(0, 5, true))})
	require.Len(t, c.PastedStrands(), 1)
	assert.False(t, c.PastedStrands()[0].Pastable)
	assert.Equal(t, 2, out.Design.StrandCount(), "positioning does not add strands")

	_, after, err := c.ApplyCopyOperation(d, operation.Paste{})
	assert.ErrorIs(t, err, clipboard.ErrCannotPasteHere)
	assert.Equal(t, c, after)

	out, c = mustCopy(t, c, d, operation.PositionPastingPoint{Nucl: at(nt(1, 20, true))})
	assert.Equal(t, Replace, out.Kind)
	assert.True(t, c.PastedStrands()[0].Pastable)

	out, c = mustCopy(t, c, d, operation.Paste{})
	assert.Equal(t, Push, out.Kind)
	assert.Equal(t, 3, out.Design.StrandCount())
	s, _ := out.Design.Strand(2)
	assert.Equal(t, design.HelixInterval{Helix: 1, Start: 20, End: 30, Forward: true}, s.Domains[0])
	assert.Equal(t, session.PastingNone, c.PastingStatus())
	assert.Equal(t, 1, c.ClipboardSize(), "the clipboard survives a paste")
}

func TestCopyErrors(t *testing.T) {
	d := twoHelices(t)

	_, _, err := New().ApplyCopyOperation(d, operation.CopyStrands{})
	assert.ErrorIs(t, err, clipboard.ErrEmptyClipboard)

	_, _, err = New().ApplyCopyOperation(d, operation.PositionPastingPoint{Nucl: at(nt(0, 20, true))})
	assert.ErrorIs(t, err, clipboard.ErrEmptyClipboard)

	for _, op := range []operation.CopyOperation{operation.Paste{}, operation.Duplicate{}} {
		_, _, err = New().ApplyCopyOperation(d, op)
		assert.ErrorIs(t, err, ErrIncompatibleState, op.Kind().String())
	}

	coloring, err := New().Notify(session.StartColoring{})
	require.NoError(t, err)
	_, _, err = coloring.ApplyCopyOperation(d, operation.PositionPastingPoint{})
	assert.ErrorIs(t, err, ErrIncompatibleState)

	_, c := mustCopy(t, New(), d, operation.CopyStrands{Strands: []int{0}})
	_, c = mustCopy(t, c, d, operation.PositionPastingPoint{})
	_, _, err = c.ApplyCopyOperation(d, operation.Paste{})
	assert.ErrorIs(t, err, clipboard.ErrCannotPasteHere)
}

func TestDuplication(t *testing.T) {
	d := twoHelices(t)

	out, c := mustCopy(t, New(), d, operation.InitStrandsDuplication{Strands: []int{0}})
	assert.Equal(t, NoOp, out.Kind)
	assert.Equal(t, session.PastingDuplication, c.PastingStatus())

	out, c = mustCopy(t, c, d, operation.PositionPastingPoint{Nucl: at(nt(0, 10, true))})
	assert.Equal(t, Replace, out.Kind)
	assert.Equal(t, session.PastingDuplication, c.PastingStatus())
	assert.Equal(t, 2, out.Design.StrandCount())

	out, c = mustCopy(t, c, out.Design, operation.Duplicate{})
	assert.Equal(t, Push, out.Kind)
	assert.Equal(t, 3, out.Design.StrandCount())
	assert.Equal(t, session.PastingNone, c.PastingStatus())
	assert.True(t, c.CanIterateDuplication())

	out, c = mustCopy(t, c, out.Design, operation.Duplicate{})
	assert.Equal(t, Push, out.Kind)
	assert.Equal(t, 4, out.Design.StrandCount())
	s, _ := out.Design.Strand(3)
	assert.Equal(t, design.HelixInterval{Helix: 0, Start: 20, End: 30, Forward: true}, s.Domains[0])

	dup, ok := c.State().(session.WithPendingDuplication)
	require.True(t, ok)
	assert.Equal(t, nt(0, 20, true), dup.Last)
	assert.Equal(t, clipboard.Duplication{Shift: 10}, dup.Duplication)
}

func TestPasteWhileDuplicating(t *testing.T) {
	d := twoHelices(t)
	_, c := mustCopy(t, New(), d, operation.InitStrandsDuplication{Strands: []int{0}})
	_, c = mustCopy(t, c, d, operation.PositionPastingPoint{Nucl: at(nt(0, 12, true))})

	out, c := mustCopy(t, c, d, operation.Paste{})
	assert.Equal(t, Push, out.Kind)
	assert.Equal(t, 3, out.Design.StrandCount())
	assert.True(t, c.CanIterateDuplication())
}
