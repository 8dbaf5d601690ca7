package design

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interval(h, start, end int, fwd bool) HelixInterval {
	return HelixInterval{Helix: h, Start: start, End: end, Forward: fwd}
}

func TestNuclNeighbours(t *testing.T) {
	fwd := Nucl{Helix: 1, Position: 4, Forward: true}
	rev := Nucl{Helix: 1, Position: 4, Forward: false}

	assert.Equal(t, 5, fwd.Prime3().Position)
	assert.Equal(t, 3, fwd.Prime5().Position)
	assert.Equal(t, 3, rev.Prime3().Position)
	assert.Equal(t, 5, rev.Prime5().Position)
	assert.Equal(t, rev, fwd.Compl())
	assert.Equal(t, fwd, fwd.Prime3().Prime5())
}

func TestHelixIntervalEnds(t *testing.T) {
	tests := []struct {
		name   string
		dom    HelixInterval
		prime5 int
		prime3 int
	}{
		{"forward", interval(0, 2, 8, true), 2, 7},
		{"reverse", interval(0, 2, 8, false), 7, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p5, ok := tt.dom.Prime5End()
			require.True(t, ok)
			p3, ok := tt.dom.Prime3End()
			require.True(t, ok)
			assert.Equal(t, tt.prime5, p5.Position)
			assert.Equal(t, tt.prime3, p3.Position)

			off, ok := tt.dom.HasNucl(p3)
			require.True(t, ok)
			assert.Equal(t, tt.dom.Length()-1, off)
		})
	}
}

func TestHelixIntervalSplit(t *testing.T) {
	seq := "ACGTAC"
	dom := interval(3, 0, 6, false)
	dom.Sequence = &seq

	first, second, ok := dom.Split(1)
	require.True(t, ok)
	assert.Equal(t, 2, first.Length())
	assert.Equal(t, 4, second.Length())
	assert.Equal(t, 4, first.Start)
	assert.Equal(t, 4, second.End)
	assert.Equal(t, "AC", *first.Sequence)
	assert.Equal(t, "GTAC", *second.Sequence)

	require.True(t, first.CanMerge(second))
	merged := first.Merge(second)
	assert.Equal(t, dom.Start, merged.Start)
	assert.Equal(t, dom.End, merged.End)
	assert.Equal(t, seq, *merged.Sequence)

	_, _, ok = dom.Split(5)
	assert.False(t, ok, "split at the last nucleotide leaves an empty half")
	_, _, ok = dom.Split(-1)
	assert.False(t, ok)
}

func TestStrandValidate(t *testing.T) {
	s := &Strand{
		Domains:   []Domain{interval(0, 0, 4, true), Insertion{NbNucl: 2}, interval(1, 0, 4, false)},
		Junctions: []Junction{JunctionUnidentified, JunctionUnidentified, JunctionPrime3},
	}
	require.NoError(t, s.Validate())
	assert.Equal(t, 10, s.Length())

	pos, ok := s.FindNucl(Nucl{Helix: 1, Position: 3, Forward: false})
	require.True(t, ok)
	assert.Equal(t, 6, pos)

	bad := s.Clone()
	bad.Cyclic = true
	assert.ErrorIs(t, bad.Validate(), ErrMalformedStrand)

	bad = s.Clone()
	bad.Junctions = bad.Junctions[:2]
	assert.ErrorIs(t, bad.Validate(), ErrMalformedStrand)
}

func TestDesignSnapshotsAreIndependent(t *testing.T) {
	d0 := New().
		WithStrand(0, NewStrand(interval(0, 0, 10, true), 1)).
		WithStrand(1, NewStrand(interval(1, 0, 10, false), 2))
	d1 := d0.WithoutStrand(0)

	assert.Equal(t, 2, d0.StrandCount())
	assert.Equal(t, 1, d1.StrandCount())
	_, ok := d0.Strand(0)
	assert.True(t, ok)
	assert.Equal(t, 2, d0.NextStrandID())
	assert.Equal(t, 2, d1.NextStrandID())
	assert.Equal(t, 0, New().NextStrandID())

	s0, _ := d0.Strand(1)
	s1, _ := d1.Strand(1)
	assert.Same(t, s0, s1, "untouched strands are shared")
}

func TestNextIDs(t *testing.T) {
	d := New()
	_, ok := d.MaxStrandID()
	assert.False(t, ok)
	assert.Equal(t, 0, d.NextStrandID())
	assert.Equal(t, 0, d.NextHelixID())
	assert.Equal(t, 0, d.NextGridID())

	// Enough keys for the map to grow branch nodes, inserted out of order.
	for i := 0; i < 300; i++ {
		d = d.WithStrand((i*37)%300, NewStrand(interval(0, i, i+1, true), 0))
	}
	d = d.WithStrand(-5, NewStrand(interval(0, -1, 0, true), 0))
	m, ok := d.MaxStrandID()
	require.True(t, ok)
	assert.Equal(t, 299, m)
	assert.Equal(t, 300, d.NextStrandID())

	d = d.WithoutStrand(299)
	assert.Equal(t, 299, d.NextStrandID())

	d = d.WithHelix(4, &Helix{}).WithHelix(2, &Helix{}).WithGrid(3, &Grid{})
	assert.Equal(t, 5, d.NextHelixID())
	assert.Equal(t, 4, d.NextGridID())
}

func TestDesignEnds(t *testing.T) {
	d := New().WithStrand(0, NewStrand(interval(0, 0, 6, true), 1))
	assert.Equal(t, EndPrime5, d.IsStrandEnd(Nucl{Helix: 0, Position: 0, Forward: true}))
	assert.Equal(t, EndPrime3, d.IsStrandEnd(Nucl{Helix: 0, Position: 5, Forward: true}))
	assert.Equal(t, EndNone, d.IsStrandEnd(Nucl{Helix: 0, Position: 3, Forward: true}))
	assert.Equal(t, EndNone, d.IsStrandEnd(Nucl{Helix: 9, Position: 3, Forward: true}))
}

func TestReidentify(t *testing.T) {
	merged := &Strand{
		Domains:   []Domain{interval(1, 0, 6, true), interval(2, 0, 6, false)},
		Junctions: []Junction{JunctionUnidentified, JunctionPrime3},
	}
	d := Reidentify(New().WithStrand(0, merged))

	s, _ := d.Strand(0)
	require.Equal(t, XoverJunction(0), s.Junctions[0])
	assert.Equal(t, JunctionPrime3, s.Junctions[1])
	assert.Equal(t, 1, d.Xovers().Len())
	bond, ok := d.Xovers().Bond(0)
	require.True(t, ok)
	assert.Equal(t, Nucl{Helix: 1, Position: 5, Forward: true}, bond.Prime5)
	assert.Equal(t, Nucl{Helix: 2, Position: 5, Forward: false}, bond.Prime3)

	t.Run("ids are stable across rebuilds", func(t *testing.T) {
		again := Reidentify(d)
		s2, _ := again.Strand(0)
		assert.Equal(t, s.Junctions, s2.Junctions)
		assert.Equal(t, 1, again.Xovers().NextID())
	})

	t.Run("a contiguous xover label becomes adjacent", func(t *testing.T) {
		st := &Strand{
			Domains:   []Domain{interval(1, 0, 3, true), interval(1, 3, 6, true)},
			Junctions: []Junction{XoverJunction(7), JunctionPrime3},
		}
		out := Reidentify(New().WithStrand(0, st))
		got, _ := out.Strand(0)
		assert.Equal(t, JunctionAdjacent, got.Junctions[0])
		assert.Equal(t, 0, out.Xovers().Len())
	})

	t.Run("cyclic seam is labelled", func(t *testing.T) {
		st := &Strand{
			Domains:   []Domain{interval(3, 0, 6, true), interval(4, 0, 6, false)},
			Junctions: []Junction{JunctionUnidentified, JunctionUnidentified},
			Cyclic:    true,
		}
		out := Reidentify(d.WithStrand(5, st))
		got, _ := out.Strand(5)
		assert.Equal(t, IdentifiedXover, got.Junctions[0].Kind)
		assert.Equal(t, IdentifiedXover, got.Junctions[1].Kind)
		assert.NotEqual(t, got.Junctions[0].ID, got.Junctions[1].ID)
		assert.Equal(t, 3, out.Xovers().Len())
	})
}

func TestDesignJSON(t *testing.T) {
	seq := "ACGT"
	scaffold := 1
	st := &Strand{
		Domains:   []Domain{interval(1, 0, 6, true), Insertion{NbNucl: 3}, interval(2, 0, 6, false)},
		Junctions: []Junction{JunctionUnidentified, JunctionUnidentified, JunctionPrime3},
		Color:     StapleColor(3),
		Sequence:  &seq,
	}
	d := Reidentify(New().
		WithStrand(0, st).
		WithStrand(1, NewStrand(interval(3, 0, 4, true), DefaultScaffoldColor)).
		WithHelix(1, &Helix{Orientation: IdentityQuat, GridPosition: &GridPosition{Grid: 0, X: 1}}).
		WithGrid(0, &Grid{Type: HoneycombGrid, Orientation: IdentityQuat}).
		WithScaffoldID(&scaffold).
		WithScaffoldSequence("ACGTACGT", 2).
		WithSmallSpheres(0, true))

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var back Design
	require.NoError(t, json.Unmarshal(raw, &back))

	assert.Equal(t, d.StrandIDs(), back.StrandIDs())
	got, _ := back.Strand(0)
	want, _ := d.Strand(0)
	assert.Equal(t, want.Domains, got.Domains)
	assert.Equal(t, want.Junctions, got.Junctions)
	assert.Equal(t, d.Xovers().Entries(), back.Xovers().Entries())
	assert.Equal(t, d.Xovers().NextID(), back.Xovers().NextID())
	id, ok := back.ScaffoldID()
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.True(t, back.SmallSpheres(0))
	g, ok := back.Grid(0)
	require.True(t, ok)
	assert.Equal(t, HoneycombGrid, g.Type)

	err = json.Unmarshal([]byte(`{"version":1,"strands":[{"id":0,"domains":[{"insertion":{"nb_nucl":1}}],"junctions":[]}]}`), &back)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestStapleColor(t *testing.T) {
	seen := map[uint32]bool{}
	for i := 0; i < 32; i++ {
		c := StapleColor(i)
		assert.Equal(t, uint32(0xFF), c>>24, "color %d is opaque", i)
		seen[c] = true
	}
	assert.Greater(t, len(seen), 24)
	assert.Equal(t, StapleColor(5), StapleColor(5))

	c, err := ParseColor("#3366cc")
	require.NoError(t, err)
	assert.Equal(t, DefaultScaffoldColor, c)
	assert.Equal(t, "#3366cc", ColorHex(c))

	_, err = ParseColor("blue")
	assert.Error(t, err)
}
