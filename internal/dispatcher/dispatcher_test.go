package dispatcher

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/engine/topology"
	"github.com/dshills/helixedit/internal/grid"
	"github.com/dshills/helixedit/internal/operation"
	"github.com/dshills/helixedit/internal/session"
)

func nt(h, p int, fwd bool) design.Nucl { return design.Nucl{Helix: h, Position: p, Forward: fwd} }

// twoHelices returns a square grid with helix 0 on (0, 0) and helix 1 on
// (1, 0). Strand 0 covers helix 0 [0, 10) forward and strand 1 covers
// helix 1 [0, 10) reverse.
func twoHelices(t *testing.T) design.Design {
	t.Helper()
	d := design.New().WithGrid(0, &design.Grid{Orientation: design.IdentityQuat})
	m := grid.NewManager(d)
	for x := 0; x < 2; x++ {
		var err error
		d, _, err = m.AddHelix(d, design.GridPosition{Grid: 0, X: x})
		require.NoError(t, err)
	}
	d = d.WithStrand(0, design.NewStrand(design.HelixInterval{Helix: 0, Start: 0, End: 10, Forward: true}, 0xFF000000))
	d = d.WithStrand(1, design.NewStrand(design.HelixInterval{Helix: 1, Start: 0, End: 10, Forward: false}, 0xFF000000))
	return d
}

func mustApply(t *testing.T, c Controller, d design.Design, op operation.Operation) (Outcome, Controller) {
	t.Helper()
	out, next, err := c.ApplyOperation(d, op)
	require.NoError(t, err)
	return out, next
}

func helix(t *testing.T, d design.Design, id int) *design.Helix {
	t.Helper()
	h, ok := d.Helix(id)
	require.True(t, ok)
	return h
}

func TestOutcomeFollowsPriorState(t *testing.T) {
	d := twoHelices(t)

	out, c := mustApply(t, New(), d, operation.Cut{Nucl: nt(0, 4, true)})
	assert.Equal(t, Push, out.Kind)
	assert.Equal(t, 3, out.Design.StrandCount())
	assert.Equal(t, 2, d.StrandCount(), "input design untouched")
	assert.Equal(t, session.Normal{}, c.State())

	applying, err := New().Notify(session.StartApplying{Design: d})
	require.NoError(t, err)
	out, _ = mustApply(t, applying, d, operation.Cut{Nucl: nt(0, 4, true)})
	assert.Equal(t, Replace, out.Kind)

	pending := Controller{state: session.WithPendingOp{Op: operation.GridHelixCreation{}}}
	out, _ = mustApply(t, pending, d, operation.Cut{Nucl: nt(0, 4, true)})
	assert.Equal(t, Push, out.Kind)
}

func TestIncompatibleStateKeepsController(t *testing.T) {
	d := twoHelices(t)

	out, c := mustApply(t, New(), d, operation.ChangeColor{Color: 0xFFFF0000, Strands: []int{0, 42}})
	assert.Equal(t, Push, out.Kind)
	assert.Equal(t, session.ChangingColor{}, c.State())
	s, _ := out.Design.Strand(0)
	assert.Equal(t, uint32(0xFFFF0000), s.Color)

	out, c = mustApply(t, c, out.Design, operation.ChangeColor{Color: 0xFF00FF00, Strands: []int{1}})
	assert.Equal(t, Replace, out.Kind)

	_, after, err := c.ApplyOperation(out.Design, operation.Cut{Nucl: nt(0, 4, true)})
	require.ErrorIs(t, err, ErrIncompatibleState)
	assert.Equal(t, ClassSessionIncompatible, Classify(err))
	assert.Equal(t, c, after)

	c, err = c.Notify(session.FinishOperation{})
	require.NoError(t, err)
	_, _ = mustApply(t, c, out.Design, operation.Cut{Nucl: nt(0, 4, true)})
}

func TestGestureReplaysFromStartingDesign(t *testing.T) {
	d := twoHelices(t)
	start := helix(t, d, 1).Position

	move := func(x float64) operation.Translation {
		return operation.Translation{
			Target:      operation.Target{Kind: operation.TargetHelices, IDs: []int{1}},
			Translation: design.Vec3{X: x},
		}
	}

	out, c := mustApply(t, New(), d, move(1))
	assert.Equal(t, Push, out.Kind)
	assert.Equal(t, start.Add(design.Vec3{X: 1}), helix(t, out.Design, 1).Position)
	assert.Nil(t, helix(t, out.Design, 1).GridPosition, "free moves leave the grid")

	out, c = mustApply(t, c, out.Design, move(2))
	assert.Equal(t, Replace, out.Kind)
	assert.Equal(t, start.Add(design.Vec3{X: 2}), helix(t, out.Design, 1).Position)

	gesture := operation.HelixTranslation{Helix: 1, Right: design.Vec3{X: 1}, X: 3}
	out, c, err := c.UpdatePendingOperation(out.Design, gesture)
	require.NoError(t, err)
	assert.Equal(t, start.Add(design.Vec3{X: 3}), helix(t, out.Design, 1).Position)
	assert.Equal(t, gesture, session.PendingOp(c.State()))

	c, err = c.Notify(session.FinishOperation{})
	require.NoError(t, err)
	assert.Equal(t, session.WithPendingOp{Op: gesture}, c.State())
}

func TestSnappingMoves(t *testing.T) {
	d := twoHelices(t)
	D := grid.InterHelixDistance
	snap := func(v design.Vec3) operation.Translation {
		return operation.Translation{
			Target:      operation.Target{Kind: operation.TargetHelices, IDs: []int{1}, Snap: true},
			Translation: v,
		}
	}

	out, _ := mustApply(t, New(), d, snap(design.Vec3{Z: D + 0.3}))
	assert.Equal(t, design.GridPosition{Grid: 0, X: 2}, *helix(t, out.Design, 1).GridPosition)

	out, _ = mustApply(t, New(), d, snap(design.Vec3{Z: -D}))
	h := helix(t, out.Design, 1)
	assert.Equal(t, helix(t, d, 1).Position, h.Position, "a failed reattach keeps the helix in place")
	assert.Equal(t, 1, h.GridPosition.X)

	_, _, err := New().ApplyOperation(d, operation.Translation{Target: operation.Target{Kind: operation.TargetDesign}})
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, _, err = New().ApplyOperation(d, operation.Rotation{Target: operation.Target{Kind: operation.TargetDesign}})
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestMoveGrids(t *testing.T) {
	d := twoHelices(t)
	out, c := mustApply(t, New(), d, operation.Translation{
		Target:      operation.Target{Kind: operation.TargetGrids, IDs: []int{0}},
		Translation: design.Vec3{Y: 5},
	})
	assert.InDelta(t, 5, helix(t, out.Design, 0).Position.Y, 1e-9)
	assert.IsType(t, session.ApplyingOperation{}, c.State())

	q := design.AxisAngle(design.Vec3{X: 1}, math.Pi)
	out, _ = mustApply(t, c, out.Design, operation.Rotation{
		Target:   operation.Target{Kind: operation.TargetGrids, IDs: []int{0}},
		Rotation: q,
	})
	assert.InDelta(t, 0, helix(t, out.Design, 0).Position.Y, 1e-9, "replayed from the grid before the translation")
	assert.InDelta(t, -grid.InterHelixDistance, helix(t, out.Design, 1).Position.Z, 1e-9)
}

func TestFlatView(t *testing.T) {
	d := twoHelices(t)
	out, c := mustApply(t, New(), d, operation.SetIsometry{Helix: 0, Isometry: design.Isometry2{Translation: design.Vec2{X: 1}}})
	assert.Equal(t, design.Vec2{X: 1}, helix(t, out.Design, 0).Isometry2D.Translation)

	out, c = mustApply(t, c, out.Design, operation.RotateHelices{Helices: []int{0}, Angle: 0.42})
	assert.InDelta(t, math.Pi/8, helix(t, out.Design, 0).Isometry2D.Angle, 1e-9)

	out, _ = mustApply(t, c, out.Design, operation.RotateHelices{Helices: []int{0}, Angle: 0.1})
	assert.InDelta(t, 0, helix(t, out.Design, 0).Isometry2D.Angle, 1e-9, "replayed and snapped to zero")

	_, _, err := New().ApplyOperation(d, operation.SetIsometry{Helix: 8})
	assert.ErrorIs(t, err, grid.ErrHelixDoesNotExist)
	assert.Equal(t, ClassNotFound, Classify(err))
}

func TestStrandBuilders(t *testing.T) {
	d := twoHelices(t)

	out, c := mustApply(t, New(), d, operation.RequestStrandBuilders{Nucls: []design.Nucl{nt(0, 9, true)}})
	assert.Equal(t, Push, out.Kind)
	b, ok := c.State().(session.BuildingStrand)
	require.True(t, ok)
	assert.True(t, b.Initializing)
	require.Len(t, session.Builders(c.State()), 1)

	out, c = mustApply(t, c, out.Design, operation.MoveBuilders{To: 15})
	assert.Equal(t, Replace, out.Kind)
	s, _ := out.Design.Strand(0)
	assert.Equal(t, design.HelixInterval{Helix: 0, Start: 0, End: 16, Forward: true}, s.Domains[0])
	assert.False(t, c.State().(session.BuildingStrand).Initializing)

	out, c = mustApply(t, c, out.Design, operation.MoveBuilders{To: 12})
	s, _ = out.Design.Strand(0)
	assert.Equal(t, 13, s.Domains[0].(design.HelixInterval).End)

	_, _, err := c.ApplyOperation(out.Design, operation.Cut{Nucl: nt(0, 2, true)})
	assert.ErrorIs(t, err, ErrIncompatibleState)

	_, _, err = New().ApplyOperation(d, operation.MoveBuilders{To: 3})
	assert.ErrorIs(t, err, ErrIncompatibleState)

	_, _, err = New().ApplyOperation(d, operation.RequestStrandBuilders{Nucls: []design.Nucl{nt(0, 4, true)}})
	assert.ErrorIs(t, err, ErrCannotBuildOn)

	out, c = mustApply(t, New(), d, operation.RequestStrandBuilders{Nucls: []design.Nucl{nt(0, 20, true)}})
	assert.Equal(t, 3, out.Design.StrandCount(), "free nucleotides get a strand")
	assert.Equal(t, 1, c.ColorIndex())
	assert.Equal(t, out.Design.StrandCount(), c.State().(session.BuildingStrand).Initial.StrandCount())
}

func TestAddGridHelix(t *testing.T) {
	d := twoHelices(t)

	out, c := mustApply(t, New(), d, operation.AddGridHelix{Position: design.GridPosition{Grid: 0, Y: 1}, Start: 4, Length: 6})
	assert.Equal(t, 4, out.Design.StrandCount())
	assert.Equal(t, 2, c.ColorIndex())
	for _, id := range []int{2, 3} {
		s, ok := out.Design.Strand(id)
		require.True(t, ok)
		dom := s.Domains[0].(design.HelixInterval)
		assert.Equal(t, 2, dom.Helix)
		assert.Equal(t, [2]int{4, 10}, [2]int{dom.Start, dom.End})
	}

	out, _ = mustApply(t, New(), d, operation.AddGridHelix{Position: design.GridPosition{Grid: 0, X: 5}})
	assert.Equal(t, 2, out.Design.StrandCount())

	_, _, err := New().ApplyOperation(d, operation.AddGridHelix{Position: design.GridPosition{Grid: 0, X: 1}})
	assert.ErrorIs(t, err, grid.ErrGridPositionAlreadyUsed)
	_, _, err = New().ApplyOperation(d, operation.AddGridHelix{Position: design.GridPosition{Grid: 3}})
	assert.ErrorIs(t, err, grid.ErrGridDoesNotExist)
}

func TestGridsFromHelices(t *testing.T) {
	d := twoHelices(t)
	_, _, err := New().ApplyOperation(d, operation.HelicesToGrid{})
	assert.ErrorIs(t, err, ErrBadSelection)
	_, _, err = New().ApplyOperation(d, operation.HelicesToGrid{Helices: []int{0, 1}})
	assert.ErrorIs(t, err, ErrNotEnoughHelices)
	assert.Equal(t, ClassCapability, Classify(err))

	out, _ := mustApply(t, New(), d, operation.AddGrid{Grid: design.Grid{Type: design.HoneycombGrid, Orientation: design.IdentityQuat}})
	g, ok := out.Design.Grid(1)
	require.True(t, ok)
	assert.Equal(t, design.HoneycombGrid, g.Type)

	out, _ = mustApply(t, New(), out.Design, operation.SetHelicesPersistence{Grids: []int{0, 1}, Persistent: false})
	out, _ = mustApply(t, New(), out.Design, operation.SetSmallSpheres{Grids: []int{1}, Small: true})
	assert.False(t, out.Design.PersistentPhantoms(1))
	assert.True(t, out.Design.SmallSpheres(1))
	assert.False(t, out.Design.SmallSpheres(0))
}

func TestStrandEdits(t *testing.T) {
	d := twoHelices(t)

	out, c := mustApply(t, New(), d, operation.SetScaffoldID{ID: func() *int { i := 1; return &i }()})
	out, c = mustApply(t, c, out.Design, operation.RecolorStaples{})
	s0, _ := out.Design.Strand(0)
	s1, _ := out.Design.Strand(1)
	assert.Equal(t, design.StapleColor(0), s0.Color)
	assert.Equal(t, uint32(0xFF000000), s1.Color, "scaffold keeps its color")
	assert.Equal(t, 1, c.ColorIndex())

	out, _ = mustApply(t, c, out.Design, operation.RmStrands{Strands: []int{1}})
	_, ok := out.Design.ScaffoldID()
	assert.False(t, ok, "removing the scaffold clears it")

	out, _ = mustApply(t, New(), d, operation.ChangeSequence{Strand: 0, Sequence: "ACGT"})
	out, _ = mustApply(t, New(), out.Design, operation.SetStrandName{Strand: 0, Name: "staple"})
	s0, _ = out.Design.Strand(0)
	require.NotNil(t, s0.Sequence)
	require.NotNil(t, s0.Name)
	assert.Equal(t, "ACGT", *s0.Sequence)
	assert.Equal(t, "staple", *s0.Name)

	out, _ = mustApply(t, New(), out.Design, operation.SetStrandName{Strand: 0})
	s0, _ = out.Design.Strand(0)
	assert.Nil(t, s0.Name)

	out, _ = mustApply(t, New(), d, operation.NewStrand{Start: nt(1, 20, true), Length: 4})
	assert.Equal(t, 3, out.Design.StrandCount())

	out, _ = mustApply(t, New(), d, operation.SetScaffoldSequence{Sequence: "AATT", Shift: 2})
	seq, ok := out.Design.ScaffoldSequence()
	assert.True(t, ok)
	assert.Equal(t, "AATT", seq)

	tests := []struct {
		name string
		op   operation.Operation
		want error
	}{
		{"name of missing strand", operation.SetStrandName{Strand: 9, Name: "x"}, topology.ErrStrandDoesNotExist},
		{"sequence of missing strand", operation.ChangeSequence{Strand: 9}, topology.ErrStrandDoesNotExist},
		{"missing scaffold", operation.SetScaffoldID{ID: func() *int { i := 9; return &i }()}, topology.ErrStrandDoesNotExist},
		{"remove missing strand", operation.RmStrands{Strands: []int{0, 9}}, topology.ErrStrandDoesNotExist},
		{"new strand on taken nucleotides", operation.NewStrand{Start: nt(0, 8, true), Length: 4}, ErrCannotBuildOn},
		{"new strand on missing helix", operation.NewStrand{Start: nt(7, 0, true), Length: 4}, grid.ErrHelixDoesNotExist},
		{"cut outside strands", operation.Cut{Nucl: nt(0, 40, true)}, topology.ErrCutInexistingStrand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, err := New().ApplyOperation(d, tt.op)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, New(), c)
		})
	}
}

func TestCrossovers(t *testing.T) {
	d := twoHelices(t)

	out, _ := mustApply(t, New(), d, operation.Xover{Prime5: 0, Prime3: 1})
	assert.Equal(t, 1, out.Design.StrandCount())
	s, _ := out.Design.Strand(0)
	assert.Len(t, s.Domains, 2)

	_, _, err := New().ApplyOperation(d, operation.GeneralXover{Source: nt(0, 3, true), Target: nt(0, 6, true)})
	assert.Error(t, err)
	assert.Equal(t, ClassInvalidTopology, Classify(err))

	out, _ = mustApply(t, New(), d, operation.CrossCut{Source: 0, Target: 1, Nucl: nt(1, 5, false), Target3Prime: true})
	assert.Equal(t, 2, out.Design.StrandCount())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Class
	}{
		{nil, ClassUnknown},
		{errors.New("boom"), ClassUnknown},
		{fmt.Errorf("ctx: %w", topology.ErrNuclDoesNotExist), ClassNotFound},

		{topology.ErrStrandDoesNotExist, ClassNotFound},
		{topology.ErrNuclDoesNotExist, ClassNotFound},
		{topology.ErrCutInexistingStrand, ClassNotFound},
		{grid.ErrGridDoesNotExist, ClassNotFound},
		{grid.ErrHelixDoesNotExist, ClassNotFound},

		{topology.ErrXoverOnSameHelix, ClassInvalidTopology},
		{topology.ErrXoverBetweenTwoPrime5, ClassInvalidTopology},
		{topology.ErrXoverBetweenTwoPrime3, ClassInvalidTopology},
		{topology.ErrMergingSameStrand, ClassInvalidTopology},
		{design.ErrMalformedStrand, ClassInvalidTopology},
		{grid.ErrGridPositionAlreadyUsed, ClassInvalidTopology},
		{grid.ErrHelixHasNoGridPosition, ClassInvalidTopology},
		{grid.ErrCouldNotMakeEdge, ClassInvalidTopology},
		{clipboard.ErrCannotPasteHere, ClassInvalidTopology},

		{session.ErrIncompatibleState, ClassSessionIncompatible},
		{fmt.Errorf("%w: cut while building", ErrIncompatibleState), ClassSessionIncompatible},

		{ErrNotImplemented, ClassCapability},
		{ErrBadSelection, ClassCapability},
		{ErrCannotBuildOn, ClassCapability},
		{ErrNotEnoughHelices, ClassCapability},
		{clipboard.ErrEmptyClipboard, ClassCapability},
		{clipboard.ErrCouldNotCreateTemplates, ClassCapability},
		{clipboard.ErrCouldNotCreateEdges, ClassCapability},
		{clipboard.ErrEmptyOrigin, ClassCapability},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
	assert.Equal(t, "session_incompatible", ClassSessionIncompatible.String())
	assert.Equal(t, "not_found", ClassNotFound.String())
	assert.Equal(t, "unknown", Class(42).String())
}

func TestClassifyRejectedEdits(t *testing.T) {
	d := twoHelices(t)

	_, _, err := New().ApplyOperation(d, operation.Cut{Nucl: nt(0, 40, true)})
	assert.Equal(t, ClassNotFound, Classify(err))

	_, _, err = New().ApplyOperation(d, operation.AddGridHelix{Position: design.GridPosition{Grid: 0, X: 1}})
	assert.Equal(t, ClassInvalidTopology, Classify(err))
}
