package topology

import (
	"fmt"

	"github.com/dshills/helixedit/internal/design"
)

// Bool returns a pointer to b, for the forceEnd arguments.
func Bool(b bool) *bool { return &b }

// endPolicy decodes a forceEnd argument. nil lets the crossover structure
// decide; true puts the nucleotide on the 3' half; false on the 5' half.
type endPolicy struct {
	toPrime3 bool
	toPrime5 bool
}

func policy(forceEnd *bool) endPolicy {
	if forceEnd == nil {
		return endPolicy{}
	}
	return endPolicy{toPrime3: *forceEnd, toPrime5: !*forceEnd}
}

// helixOf returns the helix of dom, if it is attached to one.
func helixOf(dom design.Domain) (int, bool) {
	if h, ok := dom.(design.HelixInterval); ok {
		return h.Helix, true
	}
	return 0, false
}

// startsAfterXover reports whether nucl is the 5' end of dom and dom does not
// continue the previous domain's helix.
func startsAfterXover(dom design.Domain, nucl design.Nucl, prevHelix int, hasPrev bool) bool {
	p5, ok := dom.Prime5End()
	if !ok || p5 != nucl {
		return false
	}
	h, _ := helixOf(dom)
	return !hasPrev || prevHelix != h
}

func isPrime3End(dom design.Domain, nucl design.Nucl) bool {
	p3, ok := dom.Prime3End()
	return ok && p3 == nucl
}

// SplitStrand cuts the strand holding nucl in two. A cyclic strand is
// opened instead (see BreakCycle) and keeps its id. Otherwise the 5' half
// keeps the strand id and the 3' half receives max(ids)+1, unless the
// nucleotide lands on the 3' half because of forceEnd or because it starts
// a domain right after a crossover: then the ids are swapped. Empty halves
// are dropped. The returned id is the freshly allocated one.
func SplitStrand(d design.Design, nucl design.Nucl, forceEnd *bool) (design.Design, int, error) {
	id, ok := d.StrandOfNucl(nucl)
	if !ok {
		return d, 0, fmt.Errorf("%w: %s", ErrCutInexistingStrand, nucl)
	}
	strand, _ := d.Strand(id)
	if strand.Cyclic {
		return d.WithStrand(id, BreakCycle(strand, nucl, forceEnd)), id, nil
	}
	if strand.Length() <= 1 {
		return d, 0, fmt.Errorf("%w: strand %d has a single nucleotide", ErrCutInexistingStrand, id)
	}

	prime5, prime3, onPrime3 := splitLinear(strand, nucl, policy(forceEnd))

	newID := d.NextStrandID()
	id5, id3 := id, newID
	if onPrime3 {
		id5, id3 = newID, id
		prime3.Name, prime5.Name = strand.Name, nil
	}

	out := d.WithoutStrand(id)
	if len(prime5.Domains) > 0 {
		out = out.WithStrand(id5, prime5)
	}
	if len(prime3.Domains) > 0 {
		out = out.WithStrand(id3, prime3)
	}
	return out, newID, nil
}

func splitLinear(s *design.Strand, nucl design.Nucl, pol endPolicy) (prime5, prime3 *design.Strand, onPrime3 bool) {
	var (
		d5, d3    []design.Domain
		j5, j3    []design.Junction
		prevHelix int
		hasPrev   bool
		cut       = len(s.Domains)
	)
	onPrime3 = pol.toPrime3

	closePrime5 := func() {
		if len(j5) > 0 {
			j5[len(j5)-1] = design.JunctionPrime3
		}
	}

scan:
	for i, dom := range s.Domains {
		switch {
		case startsAfterXover(dom, nucl, prevHelix, hasPrev) && !pol.toPrime5:
			onPrime3 = true
			closePrime5()
			cut = i
			break scan
		case isPrime3End(dom, nucl) && !pol.toPrime3:
			d5 = append(d5, dom)
			j5 = append(j5, design.JunctionPrime3)
			cut = i + 1
			break scan
		}
		if off, ok := dom.HasNucl(nucl); ok {
			k := off
			if pol.toPrime3 {
				k--
			}
			first, second, ok := dom.(design.HelixInterval).Split(k)
			switch {
			case ok:
				d5 = append(d5, first)
				j5 = append(j5, design.JunctionPrime3)
				d3 = append(d3, second)
				j3 = append(j3, s.Junctions[i])
				cut = i + 1
			case k < 0:
				closePrime5()
				cut = i
			default:
				d5 = append(d5, dom)
				j5 = append(j5, design.JunctionPrime3)
				cut = i + 1
			}
			break scan
		}
		d5 = append(d5, dom)
		j5 = append(j5, s.Junctions[i])
		prevHelix, hasPrev = helixOf(dom)
	}

	d3 = append(d3, s.Domains[cut:]...)
	j3 = append(j3, s.Junctions[cut:]...)

	prime5 = &design.Strand{Domains: d5, Junctions: j5, Color: s.Color, Name: s.Name}
	prime3 = &design.Strand{Domains: d3, Junctions: j3, Color: s.Color}
	if s.Sequence != nil {
		seq5, seq3 := splitRunes(*s.Sequence, domainsLength(d5))
		prime5.Sequence, prime3.Sequence = &seq5, &seq3
	}
	return prime5, prime3, onPrime3
}

// BreakCycle opens the cyclic strand s at nucl, which must belong to it.
// The result is linear, ends at the cut point and starts right after it.
// forceEnd has the same meaning as in SplitStrand.
func BreakCycle(s *design.Strand, nucl design.Nucl, forceEnd *bool) *design.Strand {
	pol := policy(forceEnd)
	n := len(s.Domains)
	lastDom := -1
	var (
		first, second design.HelixInterval
		replaced      bool
		prevHelix     int
		hasPrev       bool
	)

	wrap := func(i int) int { return (i + n) % n }

scan:
	for i, dom := range s.Domains {
		switch {
		case startsAfterXover(dom, nucl, prevHelix, hasPrev) && !pol.toPrime5:
			lastDom = wrap(i - 1)
			break scan
		case isPrime3End(dom, nucl) && !pol.toPrime3:
			lastDom = i
			break scan
		}
		if off, ok := dom.HasNucl(nucl); ok {
			k := off
			if pol.toPrime3 {
				k--
			}
			var split bool
			first, second, split = dom.(design.HelixInterval).Split(k)
			switch {
			case split:
				replaced = true
				lastDom = i
			case k < 0:
				lastDom = wrap(i - 1)
			default:
				lastDom = i
			}
			break scan
		}
		prevHelix, hasPrev = helixOf(dom)
	}
	if lastDom < 0 {
		panic(fmt.Sprintf("topology: %s is not on the strand being opened", nucl))
	}

	out := &design.Strand{Color: s.Color, Name: s.Name}
	if replaced {
		out.Domains = append(out.Domains, second)
		out.Junctions = append(out.Junctions, s.Junctions[lastDom])
	}
	for i := lastDom + 1; i < n; i++ {
		out.Domains = append(out.Domains, s.Domains[i])
		out.Junctions = append(out.Junctions, s.Junctions[i])
	}
	for i := 0; i < lastDom; i++ {
		out.Domains = append(out.Domains, s.Domains[i])
		out.Junctions = append(out.Junctions, s.Junctions[i])
	}
	if replaced {
		out.Domains = append(out.Domains, first)
	} else {
		out.Domains = append(out.Domains, s.Domains[lastDom])
	}
	out.Junctions = append(out.Junctions, design.JunctionPrime3)

	if s.Sequence != nil {
		offset := domainsLength(s.Domains[:lastDom+1])
		if replaced {
			offset -= second.Length()
		}
		seq := rotateRunes(*s.Sequence, offset)
		out.Sequence = &seq
	}
	return out
}

func domainsLength(ds []design.Domain) int {
	n := 0
	for _, d := range ds {
		n += d.Length()
	}
	return n
}

func splitRunes(s string, n int) (string, string) {
	r := []rune(s)
	if n <= 0 {
		return "", s
	}
	if n >= len(r) {
		return s, ""
	}
	return string(r[:n]), string(r[n:])
}

func rotateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	n %= len(r)
	return string(r[n:]) + string(r[:n])
}
