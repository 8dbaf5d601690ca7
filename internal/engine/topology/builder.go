package topology

import (
	"math"

	"github.com/dshills/helixedit/internal/design"
)

// Builder drags one end of a strand along its helix. A builder is created
// from a design and replays its move on any later design that still holds
// the strand, which is how a building gesture re-derives its result from
// the gesture's starting snapshot.
type Builder struct {
	Strand  int
	Domain  int
	Helix   int
	Forward bool

	// Fixed is the position of the end of the domain that does not move.
	Fixed int
	// High tells whether the moving end is the one with the larger position.
	High bool
	// Free builders work on single-nucleotide strands: the moving end may
	// go either way around Fixed.
	Free bool

	// Min and Max bound the moving end so that it never runs into a
	// neighbouring strand.
	Min, Max int
}

// NewBuilder returns a builder grabbing the strand end at nucl. It reports
// false when nucl is not a free end of a linear strand, when its helix is
// missing, or when a single-nucleotide strand is boxed in on both sides.
func NewBuilder(d design.Design, nucl design.Nucl) (Builder, bool) {
	if _, ok := d.Helix(nucl.Helix); !ok {
		return Builder{}, false
	}
	id, ok := d.StrandOfNucl(nucl)
	if !ok {
		return Builder{}, false
	}
	s, _ := d.Strand(id)
	if s.Cyclic {
		return Builder{}, false
	}

	b := Builder{Strand: id, Helix: nucl.Helix, Forward: nucl.Forward}
	var dom design.HelixInterval
	switch {
	case s.Length() == 1:
		b.Free = true
		b.Domain = 0
		dom, _ = s.Domains[0].(design.HelixInterval)
	case isEnd(s.Prime3End, nucl):
		b.Domain = lastHelixDomain(s)
		dom, _ = s.Domains[b.Domain].(design.HelixInterval)
		b.High = dom.Forward
	case isEnd(s.Prime5End, nucl):
		b.Domain = firstHelixDomain(s)
		dom, _ = s.Domains[b.Domain].(design.HelixInterval)
		b.High = !dom.Forward
	default:
		return Builder{}, false
	}

	if b.High {
		b.Fixed = dom.Start
	} else {
		b.Fixed = dom.End - 1
	}
	if b.Free {
		b.Fixed = nucl.Position
	}

	b.Min, b.Max = math.MinInt, math.MaxInt
	if lo, ok := neighbour(d, id, nucl, -1); ok {
		b.Min = lo + 1
	}
	if hi, ok := neighbour(d, id, nucl, +1); ok {
		b.Max = hi - 1
	}
	if b.Free && b.Min == nucl.Position && b.Max == nucl.Position {
		return Builder{}, false
	}
	return b, true
}

func isEnd(end func() (design.Nucl, bool), n design.Nucl) bool {
	e, ok := end()
	return ok && e == n
}

func firstHelixDomain(s *design.Strand) int {
	for i, dom := range s.Domains {
		if _, ok := dom.(design.HelixInterval); ok {
			return i
		}
	}
	return 0
}

func lastHelixDomain(s *design.Strand) int {
	for i := len(s.Domains) - 1; i >= 0; i-- {
		if _, ok := s.Domains[i].(design.HelixInterval); ok {
			return i
		}
	}
	return len(s.Domains) - 1
}

// neighbour returns the closest position, going from nucl in direction
// dir, occupied by another strand or by another domain of the same strand
// on the same helix and direction.
func neighbour(d design.Design, self int, nucl design.Nucl, dir int) (int, bool) {
	best, found := 0, false
	d.EachStrand(func(id int, s *design.Strand) bool {
		for _, dom := range s.Domains {
			hi, ok := dom.(design.HelixInterval)
			if !ok || hi.Helix != nucl.Helix || hi.Forward != nucl.Forward {
				continue
			}
			if id == self {
				if _, on := hi.HasNucl(nucl); on {
					continue
				}
			}
			var p int
			switch {
			case dir > 0 && hi.Start > nucl.Position:
				p = hi.Start
			case dir < 0 && hi.End-1 < nucl.Position:
				p = hi.End - 1
			default:
				continue
			}
			if !found || (dir > 0 && p < best) || (dir < 0 && p > best) {
				best, found = p, true
			}
		}
		return true
	})
	return best, found
}

// MoveTo moves the end of the builder to position, clamped to the
// builder's bounds. A bound end never crosses Fixed, so the domain keeps
// at least one nucleotide. Explicit sequences of the strand are dropped
// since they no longer match its length.
func (b Builder) MoveTo(d design.Design, position int) design.Design {
	s, ok := d.Strand(b.Strand)
	if !ok || b.Domain >= len(s.Domains) {
		return d
	}
	dom, ok := s.Domains[b.Domain].(design.HelixInterval)
	if !ok {
		return d
	}
	position = min(max(position, b.Min), b.Max)

	switch {
	case b.Free:
		dom.Start, dom.End = min(b.Fixed, position), max(b.Fixed, position)+1
	case b.High:
		dom.End = max(position, b.Fixed) + 1
	default:
		dom.Start = min(position, b.Fixed)
	}
	dom.Sequence = nil

	c := s.Clone()
	c.Domains[b.Domain] = dom
	c.Sequence = nil
	return d.WithStrand(b.Strand, c)
}
