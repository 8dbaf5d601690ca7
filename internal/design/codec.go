package design

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FormatVersion is written in every encoded design.
const FormatVersion = 1

// ErrDecode is returned when an encoded design cannot be read.
var ErrDecode = errors.New("decode design")

type wireDomain struct {
	Helix     *HelixInterval `json:"helix,omitempty"`
	Insertion *Insertion     `json:"insertion,omitempty"`
}

type wireJunction struct {
	Kind string `json:"kind"`
	ID   *int   `json:"id,omitempty"`
}

type wireStrand struct {
	ID        int          `json:"id"`
	Domains   []wireDomain `json:"domains"`
	Junctions []Junction   `json:"junctions"`
	Cyclic    bool         `json:"cyclic,omitempty"`
	Color     uint32       `json:"color"`
	Sequence  *string      `json:"sequence,omitempty"`
	Name      *string      `json:"name,omitempty"`
}

type wireHelix struct {
	ID int `json:"id"`
	*Helix
}

type wireGrid struct {
	ID int `json:"id"`
	*Grid
}

type wireDesign struct {
	Version          int          `json:"version"`
	Strands          []wireStrand `json:"strands"`
	Helices          []wireHelix  `json:"helices,omitempty"`
	Grids            []wireGrid   `json:"grids,omitempty"`
	ScaffoldID       *int         `json:"scaffold_id,omitempty"`
	ScaffoldSequence *string      `json:"scaffold_sequence,omitempty"`
	ScaffoldShift    int          `json:"scaffold_shift,omitempty"`
	NoPhantoms       []int        `json:"no_phantoms,omitempty"`
	SmallSpheres     []int        `json:"small_spheres,omitempty"`
	Xovers           []XoverEntry `json:"xovers,omitempty"`
	NextXoverID      int          `json:"next_xover_id"`
}

// MarshalJSON implements json.Marshaler.
func (j Junction) MarshalJSON() ([]byte, error) {
	w := wireJunction{Kind: j.Kind.String()}
	if j.Kind == IdentifiedXover {
		id := j.ID
		w.ID = &id
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *Junction) UnmarshalJSON(data []byte) error {
	var w wireJunction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	for k, name := range junctionKindNames {
		if name == w.Kind {
			j.Kind = JunctionKind(k)
			j.ID = 0
			if j.Kind == IdentifiedXover {
				if w.ID == nil {
					return fmt.Errorf("%w: xover junction without id", ErrDecode)
				}
				j.ID = *w.ID
			}
			return nil
		}
	}
	return fmt.Errorf("%w: unknown junction kind %q", ErrDecode, w.Kind)
}

// MarshalJSON implements json.Marshaler.
func (d Design) MarshalJSON() ([]byte, error) {
	w := wireDesign{
		Version:          FormatVersion,
		Strands:          []wireStrand{},
		ScaffoldID:       d.scaffoldID,
		ScaffoldSequence: d.scaffoldSequence,
		ScaffoldShift:    d.scaffoldShift,
		NoPhantoms:       keys(d.noPhantoms),
		SmallSpheres:     keys(d.smallSpheres),
		Xovers:           d.Xovers().Entries(),
		NextXoverID:      d.Xovers().NextID(),
	}
	d.EachStrand(func(id int, s *Strand) bool {
		ws := wireStrand{
			ID:        id,
			Cyclic:    s.Cyclic,
			Color:     s.Color,
			Sequence:  s.Sequence,
			Name:      s.Name,
			Junctions: s.Junctions,
		}
		for _, dom := range s.Domains {
			switch v := dom.(type) {
			case HelixInterval:
				ws.Domains = append(ws.Domains, wireDomain{Helix: &v})
			case Insertion:
				ws.Domains = append(ws.Domains, wireDomain{Insertion: &v})
			}
		}
		w.Strands = append(w.Strands, ws)
		return true
	})
	d.EachHelix(func(id int, h *Helix) bool {
		w.Helices = append(w.Helices, wireHelix{ID: id, Helix: h})
		return true
	})
	each(d.grids, func(id int, g *Grid) bool {
		w.Grids = append(w.Grids, wireGrid{ID: id, Grid: g})
		return true
	})
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Every strand is validated.
func (d *Design) UnmarshalJSON(data []byte) error {
	var w wireDesign
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if w.Version > FormatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrDecode, w.Version)
	}

	out := New()
	for _, ws := range w.Strands {
		s := &Strand{Cyclic: ws.Cyclic, Color: ws.Color, Sequence: ws.Sequence, Name: ws.Name}
		for i, wd := range ws.Domains {
			switch {
			case wd.Helix != nil:
				s.Domains = append(s.Domains, *wd.Helix)
			case wd.Insertion != nil:
				s.Domains = append(s.Domains, *wd.Insertion)
			default:
				return fmt.Errorf("%w: strand %d domain %d is empty", ErrDecode, ws.ID, i)
			}
		}
		s.Junctions = ws.Junctions
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: strand %d: %w", ErrDecode, ws.ID, err)
		}
		out = out.WithStrand(ws.ID, s)
	}
	for _, wh := range w.Helices {
		if wh.Helix == nil {
			continue
		}
		out = out.WithHelix(wh.ID, wh.Helix)
	}
	for _, wg := range w.Grids {
		if wg.Grid == nil {
			continue
		}
		out = out.WithGrid(wg.ID, wg.Grid)
	}
	out = out.WithScaffoldID(w.ScaffoldID)
	if w.ScaffoldSequence != nil {
		out = out.WithScaffoldSequence(*w.ScaffoldSequence, w.ScaffoldShift)
	}
	for _, g := range w.NoPhantoms {
		out = out.WithPersistentPhantoms(g, false)
	}
	for _, g := range w.SmallSpheres {
		out = out.WithSmallSpheres(g, true)
	}

	reg := NewXoverRegistry()
	for _, e := range w.Xovers {
		reg.InsertAt(e.Bond, e.ID)
	}
	if w.NextXoverID > reg.nextID {
		reg.nextID = w.NextXoverID
	}
	*d = out.WithXovers(reg)
	return nil
}
