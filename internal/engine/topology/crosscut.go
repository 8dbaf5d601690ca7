package topology

import (
	"github.com/dshills/helixedit/internal/design"
)

// CrossCut cuts strand target at nucl and joins the piece holding nucl to
// strand source. With target3Prime the piece starting at nucl is appended
// after source; otherwise the piece ending at nucl is put before source.
// A cut and rejoin on a single strand closes a cycle instead.
func CrossCut(d design.Design, source, target int, nucl design.Nucl, target3Prime bool) (design.Design, error) {
	newID := d.NextStrandID()
	ts, ok := d.Strand(target)
	if !ok {
		return d, strandNotFound(target)
	}
	if !ts.HasNucl(nucl) {
		return d, nuclNotFound(nucl)
	}
	if _, ok := d.Strand(source); !ok {
		return d, strandNotFound(source)
	}
	wasCyclic := ts.Cyclic

	out, _, err := SplitStrand(d, nucl, Bool(target3Prime))
	if err != nil {
		return d, err
	}

	switch {
	case !wasCyclic && source != target:
		if target3Prime {
			// the half starting at nucl moves to newID, the other half keeps target
			if out, err = swapStrands(out, target, newID); err == nil {
				out, err = MergeStrands(out, source, newID)
			}
		} else {
			// source is consumed by the merge, so it hands its id to the spare half
			if out, err = swapStrands(out, source, newID); err == nil {
				out, err = MergeStrands(out, target, newID)
			}
		}
	case source == target:
		out, err = MakeCycle(out, source, true)
	case target3Prime:
		out, err = MergeStrands(out, source, target)
	default:
		out, err = MergeStrands(out, target, source)
	}
	if err != nil {
		return d, err
	}
	return out, nil
}

func swapStrands(d design.Design, a, b int) (design.Design, error) {
	sa, ok := d.Strand(a)
	if !ok {
		return d, strandNotFound(a)
	}
	sb, ok := d.Strand(b)
	if !ok {
		return d, strandNotFound(b)
	}
	return d.WithStrand(a, sb).WithStrand(b, sa), nil
}
