package design

// End tells whether a nucleotide is a free end of a linear strand.
type End uint8

const (
	// EndNone means the nucleotide is interior, on a cyclic strand, or absent.
	EndNone End = iota
	// EndPrime3 means the nucleotide is the 3' end of its strand.
	EndPrime3
	// EndPrime5 means the nucleotide is the 5' end of its strand.
	EndPrime5
)

func (e End) String() string {
	switch e {
	case EndPrime3:
		return "3'"
	case EndPrime5:
		return "5'"
	default:
		return "none"
	}
}

// StrandOfNucl returns the id of the strand holding n.
func (d Design) StrandOfNucl(n Nucl) (int, bool) {
	found, ok := 0, false
	d.EachStrand(func(id int, s *Strand) bool {
		if s.HasNucl(n) {
			found, ok = id, true
			return false
		}
		return true
	})
	return found, ok
}

// IsStrandEnd reports whether n is a free end of its strand. A strand made
// of a single nucleotide reports EndPrime3.
func (d Design) IsStrandEnd(n Nucl) End {
	id, ok := d.StrandOfNucl(n)
	if !ok {
		return EndNone
	}
	s, _ := d.Strand(id)
	if p3, ok := s.Prime3End(); ok && p3 == n {
		return EndPrime3
	}
	if p5, ok := s.Prime5End(); ok && p5 == n {
		return EndPrime5
	}
	return EndNone
}

// NuclCount returns the total number of nucleotides over all strands.
func (d Design) NuclCount() int {
	total := 0
	d.EachStrand(func(_ int, s *Strand) bool {
		total += s.Length()
		return true
	})
	return total
}

// HelixOccupied reports whether any strand uses helix h.
func (d Design) HelixOccupied(h int) bool {
	used := false
	d.EachStrand(func(_ int, s *Strand) bool {
		for _, dom := range s.Domains {
			if hi, ok := dom.(HelixInterval); ok && hi.Helix == h {
				used = true
				return false
			}
		}
		return true
	})
	return used
}

// Validate checks the structural invariants of every strand.
func (d Design) Validate() error {
	var err error
	d.EachStrand(func(_ int, s *Strand) bool {
		err = s.Validate()
		return err == nil
	})
	return err
}
