package operation

import "github.com/dshills/helixedit/internal/design"

// CopyOperation is an edit routed through the clipboard.
type CopyOperation interface {
	Request
	isCopy()
}

// CopyStrands fills the clipboard with templates of the given strands.
type CopyStrands struct {
	Strands []int `yaml:"strands"`
}

// PositionPastingPoint moves the pasting point. A nil Nucl hides the
// pasted strands.
type PositionPastingPoint struct {
	Nucl *design.Nucl `yaml:"nucl"`
}

// InitStrandsDuplication fills the clipboard and starts a duplication gesture.
type InitStrandsDuplication struct {
	Strands []int `yaml:"strands"`
}

// Duplicate pastes the clipboard once more, shifted by the last
// duplication offset.
type Duplicate struct{}

// Paste commits the positioned copies.
type Paste struct{}

func (CopyStrands) Kind() Kind            { return KindCopyStrands }
func (PositionPastingPoint) Kind() Kind   { return KindPositionPastingPoint }
func (InitStrandsDuplication) Kind() Kind { return KindInitStrandsDuplication }
func (Duplicate) Kind() Kind              { return KindDuplicate }
func (Paste) Kind() Kind                  { return KindPaste }

func (CopyStrands) isCopy()            {}
func (PositionPastingPoint) isCopy()   {}
func (InitStrandsDuplication) isCopy() {}
func (Duplicate) isCopy()              {}
func (Paste) isCopy()                  {}
