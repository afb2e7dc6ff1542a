package material

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-stl/common"
)

// Kind names one of the mesh material variants the external renderer knows how to build.
type Kind string

const (
	// KindBasic is unlit flat colour.
	KindBasic Kind = "basic"
	// KindStandard is the metalness/roughness model.
	KindStandard Kind = "standard"
	// KindNormal colours fragments by their normal; it has no colour parameters.
	KindNormal Kind = "normal"
	// KindPhong is Blinn-Phong with a specular highlight.
	KindPhong Kind = "phong"
	// KindLambert is diffuse-only shading. It is the fallback for absent or invalid configuration.
	KindLambert Kind = "lambert"
)

// Kinds lists every supported variant in a stable order.
var Kinds = []Kind{KindBasic, KindStandard, KindNormal, KindPhong, KindLambert}

// ParseKind maps a settings string onto a Kind. Matching ignores case and surrounding space.
//
// Parameters:
//   - s: the configured material type
//
// Returns:
//   - Kind: the matching kind
//   - error: error if s names no known variant
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown material type %q", s)
}

// DefaultColor is the mesh colour used by the fallback material.
var DefaultColor = common.ColorFromHex(0x049ef4)

// Surface holds the parameters every variant shares.
type Surface struct {
	Wireframe   bool    `json:"wireframe"`
	FlatShading bool    `json:"flatShading"`
	Transparent bool    `json:"transparent"`
	Opacity     float32 `json:"opacity"`
}

// Material defines a mesh material variant. Each variant carries its own parameter set;
// the renderer switches on Kind and reads the concrete type.
type Material interface {
	// Kind returns the variant.
	//
	// Returns:
	//   - Kind: the material variant
	Kind() Kind

	// Name returns an optional label for diagnostics.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// SurfaceParams returns the parameters shared by every variant.
	//
	// Returns:
	//   - Surface: wireframe, shading, and transparency settings
	SurfaceParams() Surface

	// sanitize clamps parameters into their valid ranges after decoding.
	sanitize()

	setName(name string)
	surface() *Surface
}

type named struct {
	name string
}

func (n *named) Name() string        { return n.name }
func (n *named) setName(name string) { n.name = name }

// Basic is an unlit material.
type Basic struct {
	named
	Surface
	Color common.Color `json:"color"`
}

// Lambert is a diffuse material.
type Lambert struct {
	named
	Surface
	Color    common.Color `json:"color"`
	Emissive common.Color `json:"emissive"`
}

// Phong is a specular material.
type Phong struct {
	named
	Surface
	Color     common.Color `json:"color"`
	Emissive  common.Color `json:"emissive"`
	Specular  common.Color `json:"specular"`
	Shininess float32      `json:"shininess"`
}

// Standard is a metalness/roughness material.
type Standard struct {
	named
	Surface
	Color     common.Color `json:"color"`
	Emissive  common.Color `json:"emissive"`
	Roughness float32      `json:"roughness"`
	Metalness float32      `json:"metalness"`
}

// Normal shades by surface normal.
type Normal struct {
	named
	Surface
}

var (
	_ Material = &Basic{}
	_ Material = &Lambert{}
	_ Material = &Phong{}
	_ Material = &Standard{}
	_ Material = &Normal{}
)

func (m *Basic) Kind() Kind    { return KindBasic }
func (m *Lambert) Kind() Kind  { return KindLambert }
func (m *Phong) Kind() Kind    { return KindPhong }
func (m *Standard) Kind() Kind { return KindStandard }
func (m *Normal) Kind() Kind   { return KindNormal }

func (m *Basic) SurfaceParams() Surface    { return m.Surface }
func (m *Lambert) SurfaceParams() Surface  { return m.Surface }
func (m *Phong) SurfaceParams() Surface    { return m.Surface }
func (m *Standard) SurfaceParams() Surface { return m.Surface }
func (m *Normal) SurfaceParams() Surface   { return m.Surface }

func (m *Basic) surface() *Surface    { return &m.Surface }
func (m *Lambert) surface() *Surface  { return &m.Surface }
func (m *Phong) surface() *Surface    { return &m.Surface }
func (m *Standard) surface() *Surface { return &m.Surface }
func (m *Normal) surface() *Surface   { return &m.Surface }

func (m *Basic) sanitize()   { m.Surface.sanitize() }
func (m *Lambert) sanitize() { m.Surface.sanitize() }
func (m *Normal) sanitize()  { m.Surface.sanitize() }

func (m *Phong) sanitize() {
	m.Surface.sanitize()
	m.Shininess = max(m.Shininess, 0)
}

func (m *Standard) sanitize() {
	m.Surface.sanitize()
	m.Roughness = common.Clamp(m.Roughness, 0, 1)
	m.Metalness = common.Clamp(m.Metalness, 0, 1)
}

func (s *Surface) sanitize() {
	s.Opacity = common.Clamp(s.Opacity, 0, 1)
}
