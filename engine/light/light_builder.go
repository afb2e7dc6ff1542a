package light

import (
	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the direction a hemisphere light arrives from.
// The vector is normalized before storing; a zero vector keeps +Z.
//
// Parameters:
//   - p: the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = common.SafeNormalize(p, mgl32.Vec3{0, 0, 1})
	}
}

// WithColor is an option builder that sets the light colour (the sky colour for hemisphere lights).
//
// Parameters:
//   - c: the colour
//
// Returns:
//   - LightBuilderOption: a function that applies the colour option to a lightImpl
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithGroundColor is an option builder that sets the ground colour of a hemisphere light.
//
// Parameters:
//   - c: the colour
//
// Returns:
//   - LightBuilderOption: a function that applies the ground colour option to a lightImpl
func WithGroundColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.groundColor = c
	}
}

// WithIntensity is an option builder that sets the brightness multiplier.
//
// Parameters:
//   - intensity: the intensity, clamped to be non-negative
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = max(intensity, 0)
	}
}

// WithEnabled is an option builder that sets whether the light starts enabled.
//
// Parameters:
//   - enabled: the initial state
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
