package design

import (
	"errors"
	"fmt"
)

// ErrMalformedStrand is returned by Strand.Validate.
var ErrMalformedStrand = errors.New("malformed strand")

// Strand is an ordered chain of domains. Junctions[i] labels the link
// between Domains[i] and Domains[i+1], or between the last and first domain
// of a cyclic strand.
//
// Strands stored in a Design are shared between snapshots and must not be
// mutated; use Clone.
type Strand struct {
	Domains   []Domain
	Junctions []Junction
	Cyclic    bool
	Color     uint32
	Sequence  *string
	Name      *string
}

// Length is the total number of nucleotides, insertions included.
func (s *Strand) Length() int {
	n := 0
	for _, d := range s.Domains {
		n += d.Length()
	}
	return n
}

// Clone returns a copy whose slices can be modified freely.
func (s *Strand) Clone() *Strand {
	c := *s
	c.Domains = append([]Domain(nil), s.Domains...)
	c.Junctions = append([]Junction(nil), s.Junctions...)
	return &c
}

// FindNucl returns the strand-relative index of n, counted from the 5' end.
func (s *Strand) FindNucl(n Nucl) (int, bool) {
	offset := 0
	for _, d := range s.Domains {
		if i, ok := d.HasNucl(n); ok {
			return offset + i, true
		}
		offset += d.Length()
	}
	return 0, false
}

// HasNucl reports whether n belongs to the strand.
func (s *Strand) HasNucl(n Nucl) bool {
	_, ok := s.FindNucl(n)
	return ok
}

// Prime5End returns the first helix nucleotide of a linear strand.
func (s *Strand) Prime5End() (Nucl, bool) {
	if s.Cyclic {
		return Nucl{}, false
	}
	for _, d := range s.Domains {
		if n, ok := d.Prime5End(); ok {
			return n, true
		}
	}
	return Nucl{}, false
}

// Prime3End returns the last helix nucleotide of a linear strand.
func (s *Strand) Prime3End() (Nucl, bool) {
	if s.Cyclic {
		return Nucl{}, false
	}
	for i := len(s.Domains) - 1; i >= 0; i-- {
		if n, ok := s.Domains[i].Prime3End(); ok {
			return n, true
		}
	}
	return Nucl{}, false
}

// Nucls lists the helix nucleotides of the strand in 5' to 3' order.
// Insertions are skipped.
func (s *Strand) Nucls() []Nucl {
	var out []Nucl
	for _, d := range s.Domains {
		if h, ok := d.(HelixInterval); ok {
			out = append(out, h.Nucls()...)
		}
	}
	return out
}

// Validate checks the structural invariants of the strand.
func (s *Strand) Validate() error {
	if len(s.Domains) != len(s.Junctions) {
		return fmt.Errorf("%w: %d domains, %d junctions", ErrMalformedStrand, len(s.Domains), len(s.Junctions))
	}
	for i, j := range s.Junctions {
		last := i == len(s.Junctions)-1
		switch {
		case j.Kind == Prime3 && (s.Cyclic || !last):
			return fmt.Errorf("%w: unexpected prime3 junction at %d", ErrMalformedStrand, i)
		case last && !s.Cyclic && j.Kind != Prime3:
			return fmt.Errorf("%w: linear strand ends with %s", ErrMalformedStrand, j)
		}
	}
	return nil
}

// NewStrand returns a linear strand made of a single helix interval.
func NewStrand(dom HelixInterval, color uint32) *Strand {
	return &Strand{
		Domains:   []Domain{dom},
		Junctions: []Junction{JunctionPrime3},
		Color:     color,
	}
}
