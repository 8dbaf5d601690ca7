package dispatcher

import "github.com/dshills/helixedit/internal/design"

// OutcomeKind tells the editor what to do with the design of an Outcome.
type OutcomeKind uint8

// Outcome kinds.
const (
	// NoOp leaves the design as is.
	NoOp OutcomeKind = iota
	// Push makes the design a new undo step.
	Push
	// Replace swaps the design without recording an undo step.
	Replace
)

func (k OutcomeKind) String() string {
	switch k {
	case Push:
		return "push"
	case Replace:
		return "replace"
	default:
		return "noop"
	}
}

// Outcome is the result of a successful operation. Design is the current
// design for NoOp outcomes.
type Outcome struct {
	Kind   OutcomeKind
	Design design.Design
}

// undoable turns a Replace into a Push.
func (o Outcome) undoable() Outcome {
	if o.Kind == Replace {
		o.Kind = Push
	}
	return o
}
