package light

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every surface equally regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypeHemisphere blends a sky colour and a ground colour by how much a surface faces
	// the light's position.
	LightTypeHemisphere
)

// String returns the renderer's name for the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeHemisphere:
		return "hemisphere"
	default:
		return fmt.Sprintf("LightType(%d)", int(t))
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType   LightType
	position    mgl32.Vec3
	color       common.Color
	groundColor common.Color
	intensity   float32
	enabled     bool
}

// Light represents a light source in the viewer scene.
//
// Lights are fixed for the lifetime of a scene; the renderer reads them once when the scene is
// presented.
type Light interface {
	// Type returns the kind of light.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the direction the light arrives from, relative to the origin.
	// Only hemisphere lights use it.
	//
	// Returns:
	//   - mgl32.Vec3: the light position
	Position() mgl32.Vec3

	// Color returns the light colour. For hemisphere lights this is the sky colour.
	//
	// Returns:
	//   - common.Color: the colour
	Color() common.Color

	// GroundColor returns the colour applied to surfaces facing away from a hemisphere light.
	//
	// Returns:
	//   - common.Color: the ground colour, black for ambient lights
	GroundColor() common.Color

	// Intensity returns the brightness multiplier.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// Enabled reports whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetIntensity changes the brightness multiplier. Negative values are clamped to zero.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetIntensity(intensity float32)

	// SetEnabled toggles the light.
	//
	// Parameters:
	//   - enabled: whether the light contributes to shading
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type with the provided options applied.
// Defaults are white, intensity 1, enabled, positioned along +Z.
//
// Parameters:
//   - lightType: the type of light to create
//   - opts: optional builder options
//
// Returns:
//   - Light: the new light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  mgl32.Vec3{0, 0, 1},
		color:     common.ColorFromHex(0xffffff),
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) GroundColor() common.Color {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = max(intensity, 0)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

type lightJSON struct {
	Type        string        `json:"type"`
	Color       common.Color  `json:"color"`
	GroundColor *common.Color `json:"groundColor,omitempty"`
	Intensity   float32       `json:"intensity"`
	Position    *[3]float32   `json:"position,omitempty"`
	Enabled     bool          `json:"enabled"`
}

// MarshalJSON describes the light for the renderer.
func (l *lightImpl) MarshalJSON() ([]byte, error) {
	out := lightJSON{
		Type:      l.lightType.String(),
		Color:     l.color,
		Intensity: l.intensity,
		Enabled:   l.enabled,
	}
	if l.lightType == LightTypeHemisphere {
		ground := l.groundColor
		pos := [3]float32(l.position)
		out.GroundColor = &ground
		out.Position = &pos
	}
	return json.Marshal(out)
}

// Rig constants for the viewer's fixed lighting.
const (
	SkyColor          = 0xffffbb
	GroundColor       = 0x080820
	HemisphereBright  = 1.5
	AmbientFillColor  = 0x404040
	AmbientFillBright = 0.4
)

// DefaultRig returns the fixed light rig every viewer scene carries: a warm hemisphere light
// shining down the up axis and a dim ambient fill so faces pointing at the ground stay readable.
//
// Returns:
//   - []Light: the rig, hemisphere first
func DefaultRig() []Light {
	return []Light{
		NewLight(LightTypeHemisphere,
			WithColor(common.ColorFromHex(SkyColor)),
			WithGroundColor(common.ColorFromHex(GroundColor)),
			WithIntensity(HemisphereBright),
		),
		NewLight(LightTypeAmbient,
			WithColor(common.ColorFromHex(AmbientFillColor)),
			WithIntensity(AmbientFillBright),
		),
	}
}
