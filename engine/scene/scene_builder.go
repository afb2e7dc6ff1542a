package scene

import (
	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/light"
)

// SceneBuilderOption is a functional option applied to a scene during Assemble.
type SceneBuilderOption func(s *scene)

// WithLogger is an option builder that sets the Logger used for assembly diagnostics.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - SceneBuilderOption: a function that applies the logger option to a scene
func WithLogger(logger common.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.logger = common.LoggerOrNop(logger)
	}
}

// WithName is an option builder that overrides the scene name, which defaults to the mesh header.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: a function that applies the name option to a scene
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithLights is an option builder that replaces the default light rig.
//
// Parameters:
//   - lights: the lights to use
//
// Returns:
//   - SceneBuilderOption: a function that applies the lights option to a scene
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append([]light.Light{}, lights...)
	}
}

// WithBoxColor is an option builder that sets the bounding box outline colour.
//
// Parameters:
//   - c: the colour
//
// Returns:
//   - SceneBuilderOption: a function that applies the colour option to a scene
func WithBoxColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.boxColor = c
	}
}
