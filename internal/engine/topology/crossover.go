package topology

import (
	"fmt"

	"github.com/dshills/helixedit/internal/design"
)

// GeneralCrossOver creates a crossover from source to target, two
// nucleotides on distinct helices, using the fewest splits and merges the
// positions of the nucleotides in their strands allow.
func GeneralCrossOver(d design.Design, source, target design.Nucl) (design.Design, error) {
	if source.Helix == target.Helix {
		return d, fmt.Errorf("%w: helix %d", ErrXoverOnSameHelix, source.Helix)
	}
	out, err := connect(d, source, target, true)
	if err != nil {
		return d, err
	}
	return out, nil
}

// connect dispatches on whether each nucleotide is a free strand end.
// When both are interior the source strand is cut first and the decision
// is taken again on the result: which strand then holds the target, and
// whether the target became an end itself, is looked up rather than
// predicted.
func connect(d design.Design, source, target design.Nucl, mayCut bool) (design.Design, error) {
	sid, ok := d.StrandOfNucl(source)
	if !ok {
		return d, nuclNotFound(source)
	}
	tid, ok := d.StrandOfNucl(target)
	if !ok {
		return d, nuclNotFound(target)
	}

	sEnd, tEnd := d.IsStrandEnd(source), d.IsStrandEnd(target)
	switch {
	case sEnd == design.EndPrime3 && tEnd == design.EndPrime3:
		return d, ErrXoverBetweenTwoPrime3
	case sEnd == design.EndPrime5 && tEnd == design.EndPrime5:
		return d, ErrXoverBetweenTwoPrime5
	case sEnd == design.EndPrime3 && tEnd == design.EndPrime5:
		return Xover(d, sid, tid)
	case sEnd == design.EndPrime5 && tEnd == design.EndPrime3:
		return Xover(d, tid, sid)
	case sEnd != design.EndNone && tEnd == design.EndNone:
		return CrossCut(d, sid, tid, target, sEnd == design.EndPrime3)
	case sEnd == design.EndNone && tEnd != design.EndNone:
		return CrossCut(d, tid, sid, source, tEnd == design.EndPrime3)
	case !mayCut:
		return d, fmt.Errorf("%w: %s is still interior after the cut", ErrCutInexistingStrand, source)
	}

	var forceEnd *bool
	if sid == tid {
		forceEnd = Bool(false)
	}
	out, _, err := SplitStrand(d, source, forceEnd)
	if err != nil {
		return d, err
	}
	return connect(out, source, target, false)
}

// Cut splits the strand holding nucl, letting the crossover structure
// decide on which half nucl lands.
func Cut(d design.Design, nucl design.Nucl) (design.Design, error) {
	out, _, err := SplitStrand(d, nucl, nil)
	return out, err
}

// InitStrand creates a linear strand of length nucleotides whose 5' end is
// start and returns its id, max(ids)+1.
func InitStrand(d design.Design, start design.Nucl, length int, color uint32) (design.Design, int) {
	if length < 1 {
		length = 1
	}
	dom := design.HelixInterval{Helix: start.Helix, Forward: start.Forward}
	if start.Forward {
		dom.Start, dom.End = start.Position, start.Position+length
	} else {
		dom.Start, dom.End = start.Position-length+1, start.Position+1
	}
	id := d.NextStrandID()
	return d.WithStrand(id, design.NewStrand(dom, color)), id
}

// RemoveStrands deletes the given strands. Nothing is removed if one of
// them is missing.
func RemoveStrands(d design.Design, ids []int) (design.Design, error) {
	out := d
	for _, id := range ids {
		if _, ok := out.Strand(id); !ok {
			return d, strandNotFound(id)
		}
		out = out.WithoutStrand(id)
	}
	return out, nil
}
