package design

import "fmt"

// Domain is one piece of a strand: either a HelixInterval or an Insertion.
// The set of implementations is closed.
type Domain interface {
	// Length is the number of nucleotides in the domain.
	Length() int
	// Prime5End returns the 5' nucleotide when the domain is attached to a helix.
	Prime5End() (Nucl, bool)
	// Prime3End returns the 3' nucleotide when the domain is attached to a helix.
	Prime3End() (Nucl, bool)
	// HasNucl returns the offset of n from the domain's 5' end.
	HasNucl(n Nucl) (int, bool)

	isDomain()
}

// HelixInterval is a contiguous run of nucleotides on one helix.
// End is exclusive.
type HelixInterval struct {
	Helix    int     `json:"helix"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Forward  bool    `json:"forward"`
	Sequence *string `json:"sequence,omitempty"`
}

// Insertion is a loop of NbNucl bases with no helix attachment.
type Insertion struct {
	NbNucl   int     `json:"nb_nucl"`
	Sequence *string `json:"sequence,omitempty"`
}

func (HelixInterval) isDomain() {}
func (Insertion) isDomain()     {}

// Length implements Domain.
func (h HelixInterval) Length() int {
	if h.End < h.Start {
		return 0
	}
	return h.End - h.Start
}

// Prime5End implements Domain.
func (h HelixInterval) Prime5End() (Nucl, bool) {
	if h.Length() == 0 {
		return Nucl{}, false
	}
	pos := h.Start
	if !h.Forward {
		pos = h.End - 1
	}
	return Nucl{Helix: h.Helix, Position: pos, Forward: h.Forward}, true
}

// Prime3End implements Domain.
func (h HelixInterval) Prime3End() (Nucl, bool) {
	if h.Length() == 0 {
		return Nucl{}, false
	}
	pos := h.End - 1
	if !h.Forward {
		pos = h.Start
	}
	return Nucl{Helix: h.Helix, Position: pos, Forward: h.Forward}, true
}

// HasNucl implements Domain.
func (h HelixInterval) HasNucl(n Nucl) (int, bool) {
	if n.Helix != h.Helix || n.Forward != h.Forward || n.Position < h.Start || n.Position >= h.End {
		return 0, false
	}
	if h.Forward {
		return n.Position - h.Start, true
	}
	return h.End - 1 - n.Position, true
}

// Nucls returns the nucleotides of the interval in 5' to 3' order.
func (h HelixInterval) Nucls() []Nucl {
	out := make([]Nucl, 0, h.Length())
	for i := 0; i < h.Length(); i++ {
		pos := h.Start + i
		if !h.Forward {
			pos = h.End - 1 - i
		}
		out = append(out, Nucl{Helix: h.Helix, Position: pos, Forward: h.Forward})
	}
	return out
}

// Split divides the interval after its n-th nucleotide counted from the 5'
// end: the first half holds n+1 nucleotides. ok is false unless both halves
// are non-empty.
func (h HelixInterval) Split(n int) (first, second HelixInterval, ok bool) {
	if n < 0 || n+1 >= h.Length() {
		return HelixInterval{}, HelixInterval{}, false
	}
	first, second = h, h
	if h.Forward {
		first.End = h.Start + n + 1
		second.Start = first.End
	} else {
		first.Start = h.End - 1 - n
		second.End = first.Start
	}
	if h.Sequence != nil {
		s1, s2 := splitRunes(*h.Sequence, n+1)
		first.Sequence, second.Sequence = &s1, &s2
	}
	return first, second, true
}

// CanMerge reports whether next directly continues h on the same helix.
func (h HelixInterval) CanMerge(next HelixInterval) bool {
	if h.Helix != next.Helix || h.Forward != next.Forward {
		return false
	}
	end, ok1 := h.Prime3End()
	start, ok2 := next.Prime5End()
	return ok1 && ok2 && end.Prime3() == start
}

// Merge returns h extended by next. Callers check CanMerge first.
func (h HelixInterval) Merge(next HelixInterval) HelixInterval {
	if h.Forward {
		h.End = next.End
	} else {
		h.Start = next.Start
	}
	h.Sequence = joinSequences(h.Sequence, next.Sequence)
	return h
}

func (h HelixInterval) String() string {
	dir := "->"
	if !h.Forward {
		dir = "<-"
	}
	return fmt.Sprintf("h%d[%d,%d)%s", h.Helix, h.Start, h.End, dir)
}

// Length implements Domain.
func (i Insertion) Length() int { return i.NbNucl }

// Prime5End implements Domain. Insertions have no helix nucleotide.
func (Insertion) Prime5End() (Nucl, bool) { return Nucl{}, false }

// Prime3End implements Domain.
func (Insertion) Prime3End() (Nucl, bool) { return Nucl{}, false }

// HasNucl implements Domain.
func (Insertion) HasNucl(Nucl) (int, bool) { return 0, false }

// Merge sums the nucleotide counts of two insertions.
func (i Insertion) Merge(o Insertion) Insertion {
	return Insertion{NbNucl: i.NbNucl + o.NbNucl, Sequence: joinSequences(i.Sequence, o.Sequence)}
}

func (i Insertion) String() string { return fmt.Sprintf("ins(%d)", i.NbNucl) }

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

func joinSequences(a, b *string) *string {
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
