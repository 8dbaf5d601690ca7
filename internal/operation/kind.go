package operation

import "fmt"

// Kind identifies an operation. The set is closed: the dispatcher switches
// over every value.
type Kind uint8

// Design operations.
const (
	KindRecolorStaples Kind = iota
	KindSetScaffoldSequence
	KindSetScaffoldID
	KindHelicesToGrid
	KindAddGrid
	KindChangeColor
	KindSetHelicesPersistence
	KindSetSmallSpheres
	KindSnapHelices
	KindSetIsometry
	KindRotateHelices
	KindTranslation
	KindRotation
	KindRequestStrandBuilders
	KindMoveBuilders
	KindCut
	KindAddGridHelix
	KindCrossCut
	KindXover
	KindGeneralXover
	KindNewStrand
	KindRmStrands
	KindChangeSequence
	KindSetStrandName

	// Copy operations.
	KindCopyStrands
	KindPositionPastingPoint
	KindInitStrandsDuplication
	KindDuplicate
	KindPaste

	kindCount
)

var kindNames = [kindCount]string{
	KindRecolorStaples:         "recolor_staples",
	KindSetScaffoldSequence:    "set_scaffold_sequence",
	KindSetScaffoldID:          "set_scaffold_id",
	KindHelicesToGrid:          "helices_to_grid",
	KindAddGrid:                "add_grid",
	KindChangeColor:            "change_color",
	KindSetHelicesPersistence:  "set_helices_persistence",
	KindSetSmallSpheres:        "set_small_spheres",
	KindSnapHelices:            "snap_helices",
	KindSetIsometry:            "set_isometry",
	KindRotateHelices:          "rotate_helices",
	KindTranslation:            "translation",
	KindRotation:               "rotation",
	KindRequestStrandBuilders:  "request_strand_builders",
	KindMoveBuilders:           "move_builders",
	KindCut:                    "cut",
	KindAddGridHelix:           "add_grid_helix",
	KindCrossCut:               "cross_cut",
	KindXover:                  "xover",
	KindGeneralXover:           "general_xover",
	KindNewStrand:              "new_strand",
	KindRmStrands:              "rm_strands",
	KindChangeSequence:         "change_sequence",
	KindSetStrandName:          "set_strand_name",
	KindCopyStrands:            "copy_strands",
	KindPositionPastingPoint:   "position_pasting_point",
	KindInitStrandsDuplication: "init_strands_duplication",
	KindDuplicate:              "duplicate",
	KindPaste:                  "paste",
}

// String returns the snake_case name used in scripts, logs and metric labels.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsCopy reports whether k is handled by the clipboard path.
func (k Kind) IsCopy() bool {
	return k >= KindCopyStrands && k < kindCount
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
