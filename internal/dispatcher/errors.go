package dispatcher

import (
	"errors"

	"github.com/dshills/helixedit/internal/clipboard"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/engine/topology"
	"github.com/dshills/helixedit/internal/grid"
	"github.com/dshills/helixedit/internal/session"
)

// Dispatcher errors.
var (
	// ErrIncompatibleState indicates the operation cannot run in the
	// current session state. Finishing the current gesture usually helps.
	ErrIncompatibleState = session.ErrIncompatibleState

	// ErrNotImplemented indicates an operation, or a variant of one, that
	// has no effect defined.
	ErrNotImplemented = errors.New("dispatcher: not implemented")

	// ErrBadSelection indicates the operation got an empty or unusable
	// selection.
	ErrBadSelection = errors.New("dispatcher: bad selection")

	// ErrCannotBuildOn indicates no strand builder can be created on a
	// nucleotide.
	ErrCannotBuildOn = errors.New("dispatcher: cannot build on nucleotide")

	// ErrNotEnoughHelices indicates a grid was requested from too few
	// helices.
	ErrNotEnoughHelices = grid.ErrNotEnoughHelices
)

// Class groups errors by what the user can do about them.
type Class uint8

// Error classes.
const (
	ClassUnknown Class = iota
	// ClassNotFound: a referenced strand, nucleotide, helix or grid is missing.
	ClassNotFound
	// ClassInvalidTopology: the edit would produce an invalid strand structure.
	ClassInvalidTopology
	// ClassSessionIncompatible: the session is in the middle of something else.
	ClassSessionIncompatible
	// ClassCapability: the edit is recognised but cannot be carried out here.
	ClassCapability
)

var classNames = [...]string{"unknown", "not_found", "invalid_topology", "session_incompatible", "capability"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

var classes = []struct {
	err   error
	class Class
}{
	{topology.ErrStrandDoesNotExist, ClassNotFound},
	{topology.ErrNuclDoesNotExist, ClassNotFound},
	{topology.ErrCutInexistingStrand, ClassNotFound},
	{grid.ErrGridDoesNotExist, ClassNotFound},
	{grid.ErrHelixDoesNotExist, ClassNotFound},

	{topology.ErrXoverOnSameHelix, ClassInvalidTopology},
	{topology.ErrXoverBetweenTwoPrime5, ClassInvalidTopology},
	{topology.ErrXoverBetweenTwoPrime3, ClassInvalidTopology},
	{topology.ErrMergingSameStrand, ClassInvalidTopology},
	{design.ErrMalformedStrand, ClassInvalidTopology},
	{grid.ErrGridPositionAlreadyUsed, ClassInvalidTopology},
	{grid.ErrHelixHasNoGridPosition, ClassInvalidTopology},
	{grid.ErrCouldNotMakeEdge, ClassInvalidTopology},
	{clipboard.ErrCannotPasteHere, ClassInvalidTopology},

	{ErrIncompatibleState, ClassSessionIncompatible},

	// Capability errors are recoverable refusals: an unhandled variant or a
	// selection the collaborators cannot work with.
	{ErrNotImplemented, ClassCapability},
	{ErrBadSelection, ClassCapability},
	{ErrCannotBuildOn, ClassCapability},
	{grid.ErrNotEnoughHelices, ClassCapability},
	{clipboard.ErrEmptyClipboard, ClassCapability},
	{clipboard.ErrCouldNotCreateTemplates, ClassCapability},
	{clipboard.ErrCouldNotCreateEdges, ClassCapability},
	{clipboard.ErrEmptyOrigin, ClassCapability},
}

// Classify returns the class of err. A nil error is ClassUnknown.
func Classify(err error) Class {
	if err == nil {
		return ClassUnknown
	}
	for _, c := range classes {
		if errors.Is(err, c.err) {
			return c.class
		}
	}
	return ClassUnknown
}
