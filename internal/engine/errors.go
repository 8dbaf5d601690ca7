package engine

import (
	"errors"

	"github.com/dshills/helixedit/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrUnknownRequest is returned for requests that are neither design
	// nor clipboard operations.
	ErrUnknownRequest = errors.New("engine: unknown request")

	// ErrInvalidDesign is returned when a loaded design fails validation.
	ErrInvalidDesign = errors.New("engine: invalid design")
)
