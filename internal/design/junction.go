package design

import "fmt"

// JunctionKind labels the link between a domain's 3' end and the next
// domain's 5' end.
type JunctionKind uint8

const (
	// Adjacent means the two domains are contiguous on one helix.
	Adjacent JunctionKind = iota
	// Prime3 marks the last domain of a linear strand.
	Prime3
	// IdentifiedXover is a crossover registered in the XoverRegistry.
	IdentifiedXover
	// UnidentifiedXover is a crossover not yet given an id.
	UnidentifiedXover
)

var junctionKindNames = [...]string{"adjacent", "prime3", "xover", "unidentified_xover"}

func (k JunctionKind) String() string {
	if int(k) < len(junctionKindNames) {
		return junctionKindNames[k]
	}
	return fmt.Sprintf("junction(%d)", uint8(k))
}

// Junction is the label attached to every domain of a strand. ID is only
// meaningful for IdentifiedXover.
type Junction struct {
	Kind JunctionKind
	ID   int
}

// Common junction values.
var (
	JunctionAdjacent     = Junction{Kind: Adjacent}
	JunctionPrime3       = Junction{Kind: Prime3}
	JunctionUnidentified = Junction{Kind: UnidentifiedXover}
)

// XoverJunction returns an identified crossover junction.
func XoverJunction(id int) Junction {
	return Junction{Kind: IdentifiedXover, ID: id}
}

// IsXover reports whether j is an identified or unidentified crossover.
func (j Junction) IsXover() bool {
	return j.Kind == IdentifiedXover || j.Kind == UnidentifiedXover
}

func (j Junction) String() string {
	if j.Kind == IdentifiedXover {
		return fmt.Sprintf("xover(%d)", j.ID)
	}
	return j.Kind.String()
}
