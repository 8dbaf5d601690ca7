package design

// Reidentify recomputes every junction label from the nucleotide structure
// and returns the design with a freshly built crossover registry. The next
// fresh id of the previous registry is carried forward so ids are never
// reused. Strands whose labels do not change are shared with d.
func Reidentify(d Design) Design {
	reg := d.Xovers().successor()
	out := d
	d.EachStrand(func(id int, s *Strand) bool {
		if js, changed := relabel(reg, s); changed {
			c := s.Clone()
			c.Junctions = js
			out = out.WithStrand(id, c)
		}
		return true
	})
	return out.WithXovers(reg)
}

func relabel(reg *XoverRegistry, s *Strand) ([]Junction, bool) {
	js := append([]Junction(nil), s.Junctions...)
	if len(js) != len(s.Domains) {
		return js, false
	}

	var (
		prev    Nucl
		hasPrev bool
		first   Nucl
		hasHead bool
	)
	for i, dom := range s.Domains {
		p5, ok := dom.Prime5End()
		if !ok {
			continue
		}
		if !hasHead {
			first, hasHead = p5, true
		}
		if hasPrev && i > 0 {
			js[i-1] = updateJunction(reg, js[i-1], Bond{Prime5: prev, Prime3: p5})
		}
		prev, _ = dom.Prime3End()
		hasPrev = true
	}
	if s.Cyclic && hasPrev && hasHead {
		last := len(js) - 1
		js[last] = updateJunction(reg, js[last], Bond{Prime5: prev, Prime3: first})
	}

	for i := range js {
		if js[i] != s.Junctions[i] {
			return js, true
		}
	}
	return js, false
}

func updateJunction(reg *XoverRegistry, j Junction, b Bond) Junction {
	xover := b.IsXover()
	switch {
	case j.Kind == Adjacent && xover:
		return XoverJunction(reg.Insert(b))
	case j.IsXover() && !xover:
		return JunctionAdjacent
	case j.Kind == UnidentifiedXover:
		return XoverJunction(reg.Insert(b))
	case j.Kind == IdentifiedXover:
		return XoverJunction(reg.InsertAt(b, j.ID))
	default:
		return j
	}
}
