package design

import "fmt"

// Nucl identifies a single nucleotide: the helix it belongs to, its offset
// along the helix axis and the direction of the strand it sits on.
type Nucl struct {
	Helix    int  `json:"helix" yaml:"helix"`
	Position int  `json:"position" yaml:"position"`
	Forward  bool `json:"forward" yaml:"forward"`
}

// Prime3 returns the nucleotide one step toward the 3' end on the same helix.
func (n Nucl) Prime3() Nucl {
	if n.Forward {
		n.Position++
	} else {
		n.Position--
	}
	return n
}

// Prime5 returns the nucleotide one step toward the 5' end on the same helix.
func (n Nucl) Prime5() Nucl {
	if n.Forward {
		n.Position--
	} else {
		n.Position++
	}
	return n
}

// Compl returns the paired neighbour of n.
func (n Nucl) Compl() Nucl {
	n.Forward = !n.Forward
	return n
}

// Less orders nucleotides by helix, then position, then direction.
func (n Nucl) Less(o Nucl) bool {
	if n.Helix != o.Helix {
		return n.Helix < o.Helix
	}
	if n.Position != o.Position {
		return n.Position < o.Position
	}
	return !n.Forward && o.Forward
}

func (n Nucl) String() string {
	dir := '<'
	if n.Forward {
		dir = '>'
	}
	return fmt.Sprintf("h%d:nt%d%c", n.Helix, n.Position, dir)
}

// Bond is an ordered pair of nucleotides, 5' side first.
type Bond struct {
	Prime5 Nucl `json:"prime5"`
	Prime3 Nucl `json:"prime3"`
}

// IsXover reports whether the bond joins two nucleotides that are not
// natural neighbours along a helix.
func (b Bond) IsXover() bool {
	return b.Prime5.Prime3() != b.Prime3
}
