package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/operation"
)

func TestCompatible(t *testing.T) {
	all := operation.Kinds()

	for _, s := range []State{Normal{}, WithPendingOp{}, WithPendingDuplication{}, ApplyingOperation{}} {
		for _, k := range all {
			assert.True(t, Compatible(s, k), "%s accepts %s", s.Name(), k)
		}
	}

	assert.True(t, Compatible(ChangingColor{}, operation.KindChangeColor))
	assert.False(t, Compatible(ChangingColor{}, operation.KindCut))

	building := BuildingStrand{Initializing: true}
	assert.True(t, Compatible(building, operation.KindCut))
	building.Initializing = false
	assert.True(t, Compatible(building, operation.KindMoveBuilders))
	assert.False(t, Compatible(building, operation.KindCut))

	for _, s := range []State{PositioningPastingPoint{}, PositioningDuplicationPoint{}} {
		assert.False(t, Compatible(s, operation.KindCut), s.Name())
		assert.False(t, Compatible(s, operation.KindChangeColor), s.Name())
	}
}

func TestStableAndPasting(t *testing.T) {
	tests := []struct {
		state   State
		stable  bool
		pasting PastingStatus
	}{
		{Normal{}, true, PastingNone},
		{WithPendingOp{}, true, PastingNone},
		{WithPendingDuplication{}, true, PastingNone},
		{ApplyingOperation{}, false, PastingNone},
		{BuildingStrand{}, false, PastingNone},
		{ChangingColor{}, false, PastingNone},
		{PositioningPastingPoint{}, false, PastingCopy},
		{PositioningDuplicationPoint{}, false, PastingDuplication},
	}
	for _, tt := range tests {
		t.Run(tt.state.Name(), func(t *testing.T) {
			assert.Equal(t, tt.stable, Stable(tt.state))
			assert.Equal(t, tt.pasting, Pasting(tt.state))
		})
	}
}

func TestFinishKeepsPendingOp(t *testing.T) {
	op := operation.HelixTranslation{Helix: 3, X: 1}

	s, err := Transition(ApplyingOperation{Op: op}, FinishOperation{})
	require.NoError(t, err)
	assert.Equal(t, WithPendingOp{Op: op}, s)

	s, err = Transition(ApplyingOperation{}, FinishOperation{})
	require.NoError(t, err)
	assert.Equal(t, Normal{}, s)

	s, err = Transition(WithPendingOp{Op: op}, FinishOperation{})
	require.NoError(t, err)
	assert.Equal(t, WithPendingOp{Op: op}, s)

	s, err = Transition(BuildingStrand{}, FinishOperation{})
	require.NoError(t, err)
	assert.Equal(t, Normal{}, s)
}

func TestStartApplyingKeepsInitialDesign(t *testing.T) {
	first := design.New().WithHelix(0, &design.Helix{Orientation: design.IdentityQuat})
	s, err := Transition(Normal{}, StartApplying{Design: first})
	require.NoError(t, err)

	s, err = Transition(s, StartApplying{Design: design.New()})
	require.NoError(t, err)
	a, ok := s.(ApplyingOperation)
	require.True(t, ok)
	assert.Equal(t, 1, len(a.Design.HelixIDs()))

	op := operation.HelixRotation{Helix: 0, Angle: 1}
	s, err = Transition(s, PendingUpdated{Op: op})
	require.NoError(t, err)
	assert.Equal(t, op, PendingOp(s))
}

func TestPositioningPaste(t *testing.T) {
	p := &design.Nucl{Helix: 1, Position: 4, Forward: true}

	for _, from := range []State{Normal{}, WithPendingOp{}, PositioningPastingPoint{}} {
		s, err := Transition(from, StartPositioningPaste{Point: p})
		require.NoError(t, err, from.Name())
		assert.Equal(t, PositioningPastingPoint{Point: p}, s)
		assert.Equal(t, p, PastingPoint(s))
	}

	cb := &clipboard.Clipboard{}
	dup := &clipboard.Duplication{Shift: 4}
	s, err := Transition(PositioningDuplicationPoint{Clipboard: cb}, StartPositioningPaste{Point: p, Duplication: dup})
	require.NoError(t, err)
	pd, ok := s.(PositioningDuplicationPoint)
	require.True(t, ok)
	assert.Same(t, cb, pd.Clipboard)
	assert.Equal(t, dup, pd.Duplication)

	for _, from := range []State{ChangingColor{}, BuildingStrand{}, ApplyingOperation{}, WithPendingDuplication{}} {
		s, err := Transition(from, StartPositioningPaste{Point: p})
		assert.ErrorIs(t, err, ErrIncompatibleState, from.Name())
		assert.Equal(t, from.Name(), s.Name())
	}
}

func TestBuildersMoved(t *testing.T) {
	s, err := Transition(Normal{}, StartBuilding{})
	require.NoError(t, err)
	assert.True(t, s.(BuildingStrand).Initializing)

	s, err = Transition(s, BuildersMoved{})
	require.NoError(t, err)
	assert.False(t, s.(BuildingStrand).Initializing)

	_, err = Transition(Normal{}, BuildersMoved{})
	assert.ErrorIs(t, err, ErrIncompatibleState)
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, Normal{}, tr.Current())

	var changes []string
	unregister := tr.OnChange(func(from, to State) {
		changes = append(changes, from.Name()+">"+to.Name())
	})

	assert.True(t, tr.Set(ChangingColor{}))
	assert.False(t, tr.Set(ChangingColor{}), "same variant is silent")
	assert.True(t, tr.Set(Normal{}))
	assert.Equal(t, []string{"normal>changing_color", "changing_color>normal"}, changes)
	assert.Equal(t, Normal{}, tr.Current())

	unregister()
	tr.Set(ChangingColor{})
	assert.Len(t, changes, 2)
	assert.Equal(t, ChangingColor{}, tr.Current())
}
