package operation

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dshills/helixedit/internal/design"
)

// Decoding errors.
var (
	ErrUnknownKind = errors.New("unknown operation")
	ErrDecode      = errors.New("decode operation")
)

type decoder func(*yaml.Node) (Request, error)

func decodeAs[T Request](n *yaml.Node) (Request, error) {
	var v T
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

var decoders = map[Kind]decoder{
	KindRecolorStaples:         decodeAs[RecolorStaples],
	KindSetScaffoldSequence:    decodeAs[SetScaffoldSequence],
	KindSetScaffoldID:          decodeAs[SetScaffoldID],
	KindHelicesToGrid:          decodeAs[HelicesToGrid],
	KindAddGrid:                decodeAs[AddGrid],
	KindChangeColor:            decodeAs[ChangeColor],
	KindSetHelicesPersistence:  decodeAs[SetHelicesPersistence],
	KindSetSmallSpheres:        decodeAs[SetSmallSpheres],
	KindSnapHelices:            decodeAs[SnapHelices],
	KindSetIsometry:            decodeAs[SetIsometry],
	KindRotateHelices:          decodeAs[RotateHelices],
	KindTranslation:            decodeAs[Translation],
	KindRotation:               decodeAs[Rotation],
	KindRequestStrandBuilders:  decodeAs[RequestStrandBuilders],
	KindMoveBuilders:           decodeAs[MoveBuilders],
	KindCut:                    decodeAs[Cut],
	KindAddGridHelix:           decodeAs[AddGridHelix],
	KindCrossCut:               decodeAs[CrossCut],
	KindXover:                  decodeAs[Xover],
	KindGeneralXover:           decodeAs[GeneralXover],
	KindNewStrand:              decodeAs[NewStrand],
	KindRmStrands:              decodeAs[RmStrands],
	KindChangeSequence:         decodeAs[ChangeSequence],
	KindSetStrandName:          decodeAs[SetStrandName],
	KindCopyStrands:            decodeAs[CopyStrands],
	KindPositionPastingPoint:   decodeAs[PositionPastingPoint],
	KindInitStrandsDuplication: decodeAs[InitStrandsDuplication],
	KindDuplicate:              decodeAs[Duplicate],
	KindPaste:                  decodeAs[Paste],
}

// Decode reads a YAML list of requests. The document is either a sequence
// or a mapping with an "operations" sequence; every entry names its kind
// in an "op" field:
//
//	operations:
//	  - op: cut
//	    nucl: {helix: 1, position: 4, forward: true}
//	  - op: xover
//	    prime5: 0
//	    prime3: 2
func Decode(data []byte) ([]Request, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.MappingNode {
		var list *yaml.Node
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "operations" {
				list = root.Content[i+1]
			}
		}
		if list == nil {
			return nil, fmt.Errorf("%w: line %d: missing operations list", ErrDecode, root.Line)
		}
		root = list
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: expected a list of operations", ErrDecode, root.Line)
	}

	out := make([]Request, 0, len(root.Content))
	for _, n := range root.Content {
		req, err := DecodeNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

// DecodeNode decodes a single request mapping.
func DecodeNode(n *yaml.Node) (Request, error) {
	var head struct {
		Op string `yaml:"op"`
	}
	if err := n.Decode(&head); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrDecode, n.Line, err)
	}
	kind, err := ParseKind(head.Op)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	req, err := decoders[kind](n)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %s: %v", ErrDecode, n.Line, kind, err)
	}
	return req, nil
}

// UnmarshalYAML reads the color as #rrggbb.
func (c *ChangeColor) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Color   string `yaml:"color"`
		Strands []int  `yaml:"strands"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	color, err := design.ParseColor(raw.Color)
	if err != nil {
		return err
	}
	c.Color, c.Strands = color, raw.Strands
	return nil
}

// UnmarshalYAML reads a grid descriptor; the lattice is "square" or "honeycomb".
func (a *AddGrid) UnmarshalYAML(n *yaml.Node) error {
	raw := struct {
		Type        string      `yaml:"type"`
		Position    design.Vec3 `yaml:"position"`
		Orientation design.Quat `yaml:"orientation"`
	}{Orientation: design.IdentityQuat}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	var typ design.GridType
	switch raw.Type {
	case "", "square":
		typ = design.SquareGrid
	case "honeycomb":
		typ = design.HoneycombGrid
	default:
		return fmt.Errorf("unknown grid type %q", raw.Type)
	}
	a.Grid = design.Grid{Type: typ, Position: raw.Position, Orientation: raw.Orientation}
	return nil
}

type rawTarget struct {
	Kind string `yaml:"kind"`
	IDs  []int  `yaml:"ids"`
	Snap bool   `yaml:"snap"`
}

func (r rawTarget) target() (Target, error) {
	t := Target{IDs: r.IDs, Snap: r.Snap}
	switch r.Kind {
	case "design":
		t.Kind = TargetDesign
	case "helices":
		t.Kind = TargetHelices
	case "grids":
		t.Kind = TargetGrids
	default:
		return t, fmt.Errorf("unknown target %q", r.Kind)
	}
	return t, nil
}

// UnmarshalYAML reads the target as {kind, ids, snap}.
func (t *Translation) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Target      rawTarget   `yaml:"target"`
		Translation design.Vec3 `yaml:"translation"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	target, err := raw.Target.target()
	if err != nil {
		return err
	}
	t.Target, t.Translation = target, raw.Translation
	return nil
}

// UnmarshalYAML reads the target as {kind, ids, snap}. The rotation is
// given either as a quaternion or as an axis and an angle in radians.
func (r *Rotation) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Target   rawTarget    `yaml:"target"`
		Rotation *design.Quat `yaml:"rotation"`
		Axis     design.Vec3  `yaml:"axis"`
		Angle    float64      `yaml:"angle"`
		Origin   design.Vec3  `yaml:"origin"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	target, err := raw.Target.target()
	if err != nil {
		return err
	}
	r.Target, r.Origin = target, raw.Origin
	if raw.Rotation != nil {
		r.Rotation = *raw.Rotation
	} else {
		r.Rotation = design.AxisAngle(raw.Axis, raw.Angle)
	}
	return nil
}
