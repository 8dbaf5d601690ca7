package topology

import (
	"errors"
	"fmt"

	"github.com/dshills/helixedit/internal/design"
)

// Errors returned by the strand algorithms. All of them leave the input
// design untouched.
var (
	// ErrStrandDoesNotExist indicates a strand id is not in the design.
	ErrStrandDoesNotExist = errors.New("strand does not exist")

	// ErrNuclDoesNotExist indicates no strand holds the nucleotide.
	ErrNuclDoesNotExist = errors.New("nucleotide does not exist")

	// ErrCutInexistingStrand indicates a cut on a missing or single-nucleotide strand.
	ErrCutInexistingStrand = errors.New("cut on inexisting strand")

	// ErrXoverOnSameHelix indicates both crossover ends are on one helix.
	ErrXoverOnSameHelix = errors.New("crossover on a single helix")

	// ErrXoverBetweenTwoPrime5 indicates both crossover ends are 5' ends.
	ErrXoverBetweenTwoPrime5 = errors.New("crossover between two 5' ends")

	// ErrXoverBetweenTwoPrime3 indicates both crossover ends are 3' ends.
	ErrXoverBetweenTwoPrime3 = errors.New("crossover between two 3' ends")

	// ErrMergingSameStrand indicates a merge of a strand with itself.
	ErrMergingSameStrand = errors.New("merging a strand with itself")
)

func strandNotFound(id int) error {
	return fmt.Errorf("%w: %d", ErrStrandDoesNotExist, id)
}

func nuclNotFound(n design.Nucl) error {
	return fmt.Errorf("%w: %s", ErrNuclDoesNotExist, n)
}
