package dispatcher

import (
	"fmt"
	"math"

	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/engine/topology"
	"github.com/dshills/helixedit/internal/grid"
	"github.com/dshills/helixedit/internal/operation"
	"github.com/dshills/helixedit/internal/session"
)

// apply runs op on d, updating c in place. c is always a copy owned by
// ApplyOperation.
func (c *Controller) apply(d design.Design, op operation.Operation) (design.Design, error) {
	switch op := op.(type) {
	case operation.RecolorStaples:
		return c.recolorStaples(d), nil
	case operation.SetScaffoldSequence:
		return d.WithScaffoldSequence(op.Sequence, op.Shift), nil
	case operation.SetScaffoldID:
		return setScaffoldID(d, op.ID)
	case operation.HelicesToGrid:
		if len(op.Helices) == 0 {
			return d, fmt.Errorf("%w: no helix selected", ErrBadSelection)
		}
		return grid.NewManager(d).MakeGridFromHelices(d, op.Helices)
	case operation.AddGrid:
		g := op.Grid
		return d.WithGrid(d.NextGridID(), &g), nil
	case operation.ChangeColor:
		if err := c.transition(session.StartColoring{}); err != nil {
			return d, err
		}
		return changeColor(d, op.Color, op.Strands), nil
	case operation.SetHelicesPersistence:
		for _, g := range op.Grids {
			d = d.WithPersistentPhantoms(g, op.Persistent)
		}
		return d, nil
	case operation.SetSmallSpheres:
		for _, g := range op.Grids {
			d = d.WithSmallSpheres(g, op.Small)
		}
		return d, nil
	case operation.SnapHelices:
		base, err := c.gestureBase(d)
		if err != nil {
			return d, err
		}
		return grid.SnapPivots(base, op.Pivots, op.Translation), nil
	case operation.SetIsometry:
		return setIsometry(d, op.Helix, op.Isometry)
	case operation.RotateHelices:
		step := math.Pi / 8
		angle := math.Round(op.Angle/step) * step
		base, err := c.gestureBase(d)
		if err != nil {
			return d, err
		}
		return grid.RotateFlat(base, op.Helices, op.Center, angle), nil
	case operation.Translation:
		return c.translate(d, op)
	case operation.Rotation:
		return c.rotate(d, op)
	case operation.RequestStrandBuilders:
		return c.requestBuilders(d, op.Nucls)
	case operation.MoveBuilders:
		return c.moveBuilders(op.To)
	case operation.Cut:
		return topology.Cut(d, op.Nucl)
	case operation.AddGridHelix:
		return c.addGridHelix(d, op)
	case operation.CrossCut:
		return topology.CrossCut(d, op.Source, op.Target, op.Nucl, op.Target3Prime)
	case operation.Xover:
		return topology.Xover(d, op.Prime5, op.Prime3)
	case operation.GeneralXover:
		return topology.GeneralCrossOver(d, op.Source, op.Target)
	case operation.NewStrand:
		return c.newStrand(d, op.Start, op.Length)
	case operation.RmStrands:
		return removeStrands(d, op.Strands)
	case operation.ChangeSequence:
		return mutateStrand(d, op.Strand, func(s *design.Strand) {
			seq := op.Sequence
			s.Sequence = &seq
		})
	case operation.SetStrandName:
		return mutateStrand(d, op.Strand, func(s *design.Strand) {
			if op.Name == "" {
				s.Name = nil
				return
			}
			name := op.Name
			s.Name = &name
		})
	}
	return d, fmt.Errorf("%w: %s", ErrNotImplemented, op.Kind())
}

// recolorStaples gives every strand but the scaffold a new palette color.
func (c *Controller) recolorStaples(d design.Design) design.Design {
	scaffold, hasScaffold := d.ScaffoldID()
	for _, id := range d.StrandIDs() {
		if hasScaffold && id == scaffold {
			continue
		}
		s, _ := d.Strand(id)
		ns := s.Clone()
		ns.Color = c.newColor()
		d = d.WithStrand(id, ns)
	}
	return d
}

func setScaffoldID(d design.Design, id *int) (design.Design, error) {
	if id != nil {
		if _, ok := d.Strand(*id); !ok {
			return d, fmt.Errorf("%w: scaffold %d", topology.ErrStrandDoesNotExist, *id)
		}
	}
	return d.WithScaffoldID(id), nil
}

// changeColor paints the given strands. Missing strands are skipped.
func changeColor(d design.Design, color uint32, ids []int) design.Design {
	for _, id := range ids {
		s, ok := d.Strand(id)
		if !ok {
			continue
		}
		ns := s.Clone()
		ns.Color = color
		d = d.WithStrand(id, ns)
	}
	return d
}

func setIsometry(d design.Design, helix int, iso design.Isometry2) (design.Design, error) {
	h, ok := d.Helix(helix)
	if !ok {
		return d, fmt.Errorf("%w: %d", grid.ErrHelixDoesNotExist, helix)
	}
	nh := h.Clone()
	nh.Isometry2D = &iso
	return d.WithHelix(helix, nh), nil
}

func (c *Controller) translate(d design.Design, op operation.Translation) (design.Design, error) {
	if op.Target.Kind != operation.TargetHelices && op.Target.Kind != operation.TargetGrids {
		return d, fmt.Errorf("%w: translation of the whole design", ErrNotImplemented)
	}
	base, err := c.gestureBase(d)
	if err != nil {
		return d, err
	}
	if op.Target.Kind == operation.TargetGrids {
		return grid.TranslateGrids(base, op.Target.IDs, op.Translation), nil
	}
	moved := grid.TranslateHelices(base, op.Target.IDs, op.Translation)
	return settle(base, moved, op.Target), nil
}

func (c *Controller) rotate(d design.Design, op operation.Rotation) (design.Design, error) {
	if op.Target.Kind != operation.TargetHelices && op.Target.Kind != operation.TargetGrids {
		return d, fmt.Errorf("%w: rotation of the whole design", ErrNotImplemented)
	}
	base, err := c.gestureBase(d)
	if err != nil {
		return d, err
	}
	if op.Target.Kind == operation.TargetGrids {
		return grid.RotateGrids(base, op.Target.IDs, op.Rotation, op.Origin), nil
	}
	moved := grid.RotateHelices(base, op.Target.IDs, op.Rotation, op.Origin)
	return settle(base, moved, op.Target), nil
}

// settle finishes a helix motion. Snapping helices go back to their grid,
// or do not move at all if one of them cannot. Other helices leave their
// grid.
func settle(base, moved design.Design, t operation.Target) design.Design {
	if !t.Snap {
		return grid.Detach(moved, t.IDs)
	}
	out, ok := grid.NewManager(moved).Reattach(moved, t.IDs, true)
	if !ok {
		return base
	}
	return out
}

// requestBuilders grabs a strand end at every nucleotide. Free
// nucleotides get a new single-nucleotide strand first.
func (c *Controller) requestBuilders(d design.Design, nucls []design.Nucl) (design.Design, error) {
	builders := make([]topology.Builder, 0, len(nucls))
	for _, n := range nucls {
		if _, taken := d.StrandOfNucl(n); !taken {
			if _, ok := d.Helix(n.Helix); ok {
				d, _ = topology.InitStrand(d, n, 1, c.newColor())
			}
		}
		b, ok := topology.NewBuilder(d, n)
		if !ok {
			return d, fmt.Errorf("%w: %s", ErrCannotBuildOn, n)
		}
		builders = append(builders, b)
	}
	// The gesture replays from the design holding the new strands.
	return d, c.transition(session.StartBuilding{Builders: builders, Initial: d})
}

func (c *Controller) moveBuilders(to int) (design.Design, error) {
	b, ok := c.state.(session.BuildingStrand)
	if !ok {
		return design.Design{}, fmt.Errorf("%w: no strand is being built", ErrIncompatibleState)
	}
	out := b.Initial
	for _, builder := range b.Builders {
		out = builder.MoveTo(out, to)
	}
	return out, c.transition(session.BuildersMoved{})
}

// addGridHelix creates a helix on a grid cell. A positive length adds a
// strand on each side of the helix covering [start, start+length).
func (c *Controller) addGridHelix(d design.Design, op operation.AddGridHelix) (design.Design, error) {
	out, id, err := grid.NewManager(d).AddHelix(d, op.Position)
	if err != nil {
		return d, err
	}
	if op.Length <= 0 {
		return out, nil
	}
	for _, forward := range []bool{false, true} {
		start := design.Nucl{Helix: id, Position: op.Start, Forward: forward}
		if !forward {
			start.Position = op.Start + op.Length - 1
		}
		out, _ = topology.InitStrand(out, start, op.Length, c.newColor())
	}
	return out, nil
}

func (c *Controller) newStrand(d design.Design, start design.Nucl, length int) (design.Design, error) {
	if _, ok := d.Helix(start.Helix); !ok {
		return d, fmt.Errorf("%w: %d", grid.ErrHelixDoesNotExist, start.Helix)
	}
	out, id := topology.InitStrand(d, start, length, c.newColor())
	s, _ := out.Strand(id)
	for _, n := range s.Nucls() {
		if _, taken := d.StrandOfNucl(n); taken {
			return d, fmt.Errorf("%w: %s is taken", ErrCannotBuildOn, n)
		}
	}
	return out, nil
}

// removeStrands deletes strands, clearing the scaffold if it is one of them.
func removeStrands(d design.Design, ids []int) (design.Design, error) {
	out, err := topology.RemoveStrands(d, ids)
	if err != nil {
		return d, err
	}
	if scaffold, ok := out.ScaffoldID(); ok {
		if _, still := out.Strand(scaffold); !still {
			out = out.WithScaffoldID(nil)
		}
	}
	return out, nil
}

func mutateStrand(d design.Design, id int, fn func(s *design.Strand)) (design.Design, error) {
	s, ok := d.Strand(id)
	if !ok {
		return d, fmt.Errorf("%w: %d", topology.ErrStrandDoesNotExist, id)
	}
	ns := s.Clone()
	fn(ns)
	return d.WithStrand(id, ns), nil
}
