// Package clipboard copies strands as templates relative to an anchor
// nucleotide and replays them at a pasting point.
//
// Helices are referenced through lattice edges from the anchor helix, so a
// copy keeps its shape when pasted on another part of a grid.
package clipboard

import (
	"fmt"

	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/grid"
)

type domainTemplate struct {
	insertion *design.Insertion

	edge       grid.Edge
	start, end int
	forward    bool
	sequence   *string
}

type strandTemplate struct {
	domains   []domainTemplate
	junctions []design.Junction
	cyclic    bool
	color     uint32
	sequence  *string
}

// Clipboard holds strand templates. A Clipboard is never modified once
// built; copying new strands builds a new one.
type Clipboard struct {
	anchor    design.Nucl
	templates []strandTemplate
}

// New builds templates for strands ids of d. The anchor is the 5' end of
// the first helix domain of the first strand.
func New(d design.Design, ids []int) (*Clipboard, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyClipboard
	}
	first, ok := d.Strand(ids[0])
	if !ok {
		return nil, fmt.Errorf("%w: strand %d does not exist", ErrCouldNotCreateTemplates, ids[0])
	}
	anchor, ok := origin(first)
	if !ok {
		return nil, fmt.Errorf("%w: strand %d", ErrEmptyOrigin, ids[0])
	}

	m := grid.NewManager(d)
	c := &Clipboard{anchor: anchor, templates: make([]strandTemplate, 0, len(ids))}
	for _, id := range ids {
		s, ok := d.Strand(id)
		if !ok {
			return nil, fmt.Errorf("%w: strand %d does not exist", ErrCouldNotCreateTemplates, id)
		}
		t, err := c.template(m, s)
		if err != nil {
			return nil, err
		}
		c.templates = append(c.templates, t)
	}
	return c, nil
}

func origin(s *design.Strand) (design.Nucl, bool) {
	for _, dom := range s.Domains {
		if n, ok := dom.Prime5End(); ok {
			return n, true
		}
	}
	return design.Nucl{}, false
}

func (c *Clipboard) template(m *grid.Manager, s *design.Strand) (strandTemplate, error) {
	t := strandTemplate{
		junctions: make([]design.Junction, len(s.Junctions)),
		cyclic:    s.Cyclic,
		color:     s.Color,
		sequence:  s.Sequence,
	}
	for i, j := range s.Junctions {
		if j.Kind == design.IdentifiedXover {
			j = design.JunctionUnidentified
		}
		t.junctions[i] = j
	}
	for _, dom := range s.Domains {
		switch dom := dom.(type) {
		case design.HelixInterval:
			edge, err := m.Edge(c.anchor.Helix, dom.Helix)
			if err != nil {
				return t, fmt.Errorf("%w: %v", ErrCouldNotCreateEdges, err)
			}
			t.domains = append(t.domains, domainTemplate{
				edge:     edge,
				start:    dom.Start - c.anchor.Position,
				end:      dom.End - c.anchor.Position,
				forward:  dom.Forward,
				sequence: dom.Sequence,
			})
		case design.Insertion:
			ins := dom
			t.domains = append(t.domains, domainTemplate{insertion: &ins})
		}
	}
	return t, nil
}

// Size returns the number of copied strands.
func (c *Clipboard) Size() int {
	if c == nil {
		return 0
	}
	return len(c.templates)
}

// Anchor returns the nucleotide the templates are expressed from.
func (c *Clipboard) Anchor() design.Nucl { return c.anchor }

// Pasted is a candidate copy of one template. Strand is nil when the
// template does not fit on the design at all.
type Pasted struct {
	Strand   *design.Strand
	Pastable bool
}

// PositionCopies instantiates every template with its anchor on point.
// Candidates overlapping existing strands, or each other, are returned
// but marked as not pastable.
func (c *Clipboard) PositionCopies(d design.Design, point design.Nucl) ([]Pasted, error) {
	if c.Size() == 0 {
		return nil, ErrEmptyClipboard
	}
	if point.Forward != c.anchor.Forward {
		return nil, fmt.Errorf("%w: %s runs against the copied strands", ErrCannotPasteHere, point)
	}
	if _, ok := d.Helix(point.Helix); !ok {
		return nil, fmt.Errorf("%w: helix %d does not exist", ErrCannotPasteHere, point.Helix)
	}

	m := grid.NewManager(d)
	taken := occupied(d)
	out := make([]Pasted, 0, len(c.templates))
	for _, t := range c.templates {
		s := t.instantiate(m, point.Helix, point.Position)
		if s == nil {
			out = append(out, Pasted{})
			continue
		}
		pastable := true
		for _, n := range s.Nucls() {
			if taken[n] {
				pastable = false
			}
			taken[n] = true
		}
		out = append(out, Pasted{Strand: s, Pastable: pastable})
	}
	return out, nil
}

func (t strandTemplate) instantiate(m *grid.Manager, helix, origin int) *design.Strand {
	s := &design.Strand{
		Domains:   make([]design.Domain, 0, len(t.domains)),
		Junctions: append([]design.Junction(nil), t.junctions...),
		Cyclic:    t.cyclic,
		Color:     t.color,
		Sequence:  t.sequence,
	}
	for _, dt := range t.domains {
		if dt.insertion != nil {
			s.Domains = append(s.Domains, *dt.insertion)
			continue
		}
		h, ok := m.Translate(helix, dt.edge)
		if !ok {
			return nil
		}
		s.Domains = append(s.Domains, design.HelixInterval{
			Helix:    h,
			Start:    origin + dt.start,
			End:      origin + dt.end,
			Forward:  dt.forward,
			Sequence: dt.sequence,
		})
	}
	return s
}

func occupied(d design.Design) map[design.Nucl]bool {
	taken := make(map[design.Nucl]bool, d.NuclCount())
	d.EachStrand(func(_ int, s *design.Strand) bool {
		for _, n := range s.Nucls() {
			taken[n] = true
		}
		return true
	})
	return taken
}

// Paste adds the candidates to d and returns the new strand ids.
func Paste(d design.Design, pasted []Pasted) (design.Design, []int, error) {
	if len(pasted) == 0 {
		return d, nil, ErrEmptyClipboard
	}
	for i, p := range pasted {
		if p.Strand == nil || !p.Pastable {
			return d, nil, fmt.Errorf("%w: copy %d overlaps the design", ErrCannotPasteHere, i)
		}
	}
	out := d
	ids := make([]int, 0, len(pasted))
	for _, p := range pasted {
		id := out.NextStrandID()
		out = out.WithStrand(id, p.Strand.Clone())
		ids = append(ids, id)
	}
	return out, ids, nil
}

// Duplication is the offset between the anchor of a clipboard and the
// point its first copy was pasted at. Applying it again produces the next
// copy of a series.
type Duplication struct {
	Edge  grid.Edge `json:"edge"`
	Shift int       `json:"shift"`
}

// DuplicationTo returns the offset from the clipboard anchor to point.
func (c *Clipboard) DuplicationTo(d design.Design, point design.Nucl) (Duplication, error) {
	edge, err := grid.NewManager(d).Edge(c.anchor.Helix, point.Helix)
	if err != nil {
		return Duplication{}, fmt.Errorf("%w: %v", ErrCouldNotCreateEdges, err)
	}
	return Duplication{Edge: edge, Shift: point.Position - c.anchor.Position}, nil
}

// Next returns the pasting point following from.
func (dup Duplication) Next(d design.Design, from design.Nucl) (design.Nucl, bool) {
	h, ok := grid.NewManager(d).Translate(from.Helix, dup.Edge)
	if !ok {
		return design.Nucl{}, false
	}
	return design.Nucl{Helix: h, Position: from.Position + dup.Shift, Forward: from.Forward}, true
}
