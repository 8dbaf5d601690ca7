package topology

import (
	"github.com/dshills/helixedit/internal/design"
)

// MakeCycle sets the cyclic flag of a strand and relabels its last junction.
//
// When closing a cycle on a strand that starts and ends with insertions the
// two insertions are fused. The seam must then join two helix intervals;
// anything else means the strand was corrupted upstream and MakeCycle panics.
func MakeCycle(d design.Design, id int, cyclic bool) (design.Design, error) {
	s, ok := d.Strand(id)
	if !ok {
		return d, strandNotFound(id)
	}
	c := s.Clone()
	c.Cyclic = cyclic
	last := len(c.Junctions) - 1

	if !cyclic {
		c.Junctions[last] = design.JunctionPrime3
		return d.WithStrand(id, c), nil
	}

	if n := len(c.Domains); n >= 2 {
		head, okHead := c.Domains[0].(design.Insertion)
		tail, okTail := c.Domains[n-1].(design.Insertion)
		if okHead && okTail {
			c.Domains[n-1] = tail.Merge(head)
			c.Domains = c.Domains[1:]
			c.Junctions = c.Junctions[1:]
			last--
		}
	}

	skipFirst, skipLast := 0, 0
	if _, ok := c.Domains[0].(design.Insertion); ok {
		skipFirst = 1
	}
	if _, ok := c.Domains[len(c.Domains)-1].(design.Insertion); ok {
		skipLast = 1
	}
	var (
		a, b   design.HelixInterval
		okA    bool
		okB    bool
		iLast  = len(c.Domains) - 1 - skipLast
		iFirst = skipFirst
	)
	if iLast >= 0 && iFirst < len(c.Domains) {
		a, okA = c.Domains[iLast].(design.HelixInterval)
		b, okB = c.Domains[iFirst].(design.HelixInterval)
	}
	if !okA || !okB {
		panic("invariant violated: cyclic seam must join two helix intervals")
	}
	c.Junctions[last] = Junction(a, b)
	return d.WithStrand(id, c), nil
}

// Junction classifies the link from the 3' end of a to the 5' end of b.
func Junction(a, b design.HelixInterval) design.Junction {
	end, ok1 := a.Prime3End()
	start, ok2 := b.Prime5End()
	if ok1 && ok2 && end.Prime3() == start {
		return design.JunctionAdjacent
	}
	return design.JunctionUnidentified
}
