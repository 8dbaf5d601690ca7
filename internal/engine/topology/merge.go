package topology

import (
	"fmt"

	"github.com/dshills/helixedit/internal/design"
)

// MergeStrands appends strand prime3 to strand prime5. The result keeps the
// id, color and name of prime5; prime3 is removed. When the seam domains
// are contiguous on one helix they are fused, otherwise the seam becomes an
// unidentified crossover.
func MergeStrands(d design.Design, prime5, prime3 int) (design.Design, error) {
	if prime5 == prime3 {
		return d, fmt.Errorf("%w: %d", ErrMergingSameStrand, prime5)
	}
	s5, ok := d.Strand(prime5)
	if !ok {
		return d, strandNotFound(prime5)
	}
	s3, ok := d.Strand(prime3)
	if !ok {
		return d, strandNotFound(prime3)
	}

	out := s5.Clone()
	out.Cyclic = false
	skip := 0
	if len(out.Domains) > 0 && len(s3.Domains) > 0 {
		last := len(out.Domains) - 1
		a, okA := out.Domains[last].(design.HelixInterval)
		b, okB := s3.Domains[0].(design.HelixInterval)
		if okA && okB && a.CanMerge(b) {
			out.Domains[last] = a.Merge(b)
			out.Junctions = out.Junctions[:last]
			skip = 1
		} else {
			out.Junctions[last] = design.JunctionUnidentified
		}
	}
	out.Domains = append(out.Domains, s3.Domains[skip:]...)
	out.Junctions = append(out.Junctions, s3.Junctions...)
	out.Sequence = concatSequences(s5.Sequence, s3.Sequence)

	return d.WithoutStrand(prime3).WithStrand(prime5, out), nil
}

func concatSequences(a, b *string) *string {
	switch {
	case a != nil && b != nil:
		s := *a + *b
		return &s
	case a != nil:
		return a
	default:
		return b
	}
}

// Xover joins the 3' end of strand prime5 to the 5' end of strand prime3,
// closing a cycle when both ids are equal.
func Xover(d design.Design, prime5, prime3 int) (design.Design, error) {
	if prime5 == prime3 {
		return MakeCycle(d, prime5, true)
	}
	return MergeStrands(d, prime5, prime3)
}
