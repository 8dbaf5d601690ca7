package grid

import "errors"

// Errors returned by the grid manager.
var (
	ErrGridDoesNotExist        = errors.New("grid does not exist")
	ErrHelixDoesNotExist       = errors.New("helix does not exist")
	ErrGridPositionAlreadyUsed = errors.New("grid position already used")
	ErrHelixHasNoGridPosition  = errors.New("helix has no grid position")
	ErrCouldNotMakeEdge        = errors.New("could not make edge")
	ErrNotEnoughHelices        = errors.New("not enough helices")
)

// MinHelicesForGrid is the number of helices needed to fit a new grid.
const MinHelicesForGrid = 4
