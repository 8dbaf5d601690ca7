package clipboard

import "errors"

// Errors returned by clipboard operations.
var (
	ErrEmptyClipboard          = errors.New("clipboard is empty")
	ErrCouldNotCreateTemplates = errors.New("could not create templates")
	ErrCouldNotCreateEdges     = errors.New("could not create edges")
	ErrCannotPasteHere         = errors.New("cannot paste here")
	ErrEmptyOrigin             = errors.New("copied strands have no origin nucleotide")
)
