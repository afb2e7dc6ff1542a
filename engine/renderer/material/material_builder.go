package material

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-stl/common"
)

// MaterialBuilderOption is a function that adjusts a material after its parameters are decoded.
type MaterialBuilderOption func(Material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m Material) {
		m.setName(name)
	}
}

// WithWireframe is an option builder that forces wireframe rendering on or off.
//
// Parameters:
//   - wireframe: whether only triangle edges are drawn
//
// Returns:
//   - MaterialBuilderOption: a function that applies the wireframe option to a material
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m Material) {
		m.surface().Wireframe = wireframe
	}
}

// WithOpacity is an option builder that sets the opacity and marks the material transparent when below 1.
//
// Parameters:
//   - opacity: the opacity in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m Material) {
		s := m.surface()
		s.Opacity = opacity
		s.Transparent = opacity < 1
	}
}

// New creates a material of the given kind. The config document holds the variant's
// parameters by their renderer names (color, emissive, specular, shininess, roughness,
// metalness, wireframe, flatShading, transparent, opacity); absent keys keep the variant's
// defaults and unknown keys are ignored.
//
// Parameters:
//   - kind: the material variant
//   - config: JSON object with parameter overrides, may be empty or null
//   - options: a variadic list of MaterialBuilderOption functions applied after decoding
//
// Returns:
//   - Material: the configured material
//   - error: error if kind is unknown or config does not decode into the variant's parameters
func New(kind Kind, config json.RawMessage, options ...MaterialBuilderOption) (Material, error) {
	m, err := defaults(kind)
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(config); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, m); err != nil {
			return nil, fmt.Errorf("invalid %s material config: %w", kind, err)
		}
	}

	for _, option := range options {
		option(m)
	}
	m.sanitize()
	return m, nil
}

// Resolve builds the material named by a settings record. Any problem with the type or the
// config falls back to Default; the returned error describes what was ignored and is nil
// when the requested material was built.
//
// Parameters:
//   - kind: the configured material type string
//   - config: the configured parameter object
//
// Returns:
//   - Material: the requested material or the default
//   - error: the reason for falling back, or nil
func Resolve(kind string, config json.RawMessage) (Material, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Default(), err
	}
	m, err := New(k, config)
	if err != nil {
		return Default(), err
	}
	return m, nil
}

// Default returns the fallback material: lambert shading in DefaultColor.
//
// Returns:
//   - Material: a new default material
func Default() Material {
	m := &Lambert{Surface: Surface{Opacity: 1}, Color: DefaultColor}
	m.setName("default")
	return m
}

func defaults(kind Kind) (Material, error) {
	white := common.ColorFromHex(0xffffff)
	surface := Surface{Opacity: 1}
	switch kind {
	case KindBasic:
		return &Basic{Surface: surface, Color: white}, nil
	case KindLambert:
		return &Lambert{Surface: surface, Color: white}, nil
	case KindPhong:
		return &Phong{Surface: surface, Color: white, Specular: common.ColorFromHex(0x111111), Shininess: 30}, nil
	case KindStandard:
		return &Standard{Surface: surface, Color: white, Roughness: 1}, nil
	case KindNormal:
		return &Normal{Surface: surface}, nil
	default:
		return nil, fmt.Errorf("unknown material type %q", kind)
	}
}
