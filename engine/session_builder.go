package engine

import (
	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/camera"
	"github.com/Carmen-Shannon/oxy-stl/engine/loader"
	"github.com/Carmen-Shannon/oxy-stl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-stl/engine/state"
)

// SessionBuilderOption is a functional option for configuring a Session via NewSession.
type SessionBuilderOption func(*session)

// WithLogger is an option builder that sets the Logger shared by the session and its components.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - SessionBuilderOption: a function that applies the logger option to a session
func WithLogger(logger common.Logger) SessionBuilderOption {
	return func(s *session) {
		s.logger = common.LoggerOrNop(logger)
	}
}

// WithStateStore sets the store the camera position is persisted to. Panels reopened on the same
// document should share a store.
//
// Parameters:
//   - store: the state store
//
// Returns:
//   - SessionBuilderOption: a function that applies the store option to a session
func WithStateStore(store state.StateStore) SessionBuilderOption {
	return func(s *session) {
		s.store = store
	}
}

// WithLoader replaces the default binary STL loader.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - SessionBuilderOption: a function that applies the loader option to a session
func WithLoader(l loader.Loader) SessionBuilderOption {
	return func(s *session) {
		s.loader = l
	}
}

// WithViewport sets the initial viewport size in pixels.
//
// Parameters:
//   - width: the viewport width
//   - height: the viewport height
//
// Returns:
//   - SessionBuilderOption: a function that applies the viewport option to a session
func WithViewport(width, height int) SessionBuilderOption {
	return func(s *session) {
		s.width, s.height = width, height
	}
}

// WithRendererOptions forwards options to the session renderer.
//
// Parameters:
//   - options: renderer options
//
// Returns:
//   - SessionBuilderOption: a function that applies the options to a session
func WithRendererOptions(options ...renderer.RendererBuilderOption) SessionBuilderOption {
	return func(s *session) {
		s.rendererOptions = append(s.rendererOptions, options...)
	}
}

// WithControllerOptions forwards options to the session camera controller.
//
// Parameters:
//   - options: camera controller options
//
// Returns:
//   - SessionBuilderOption: a function that applies the options to a session
func WithControllerOptions(options ...camera.CameraControllerOption) SessionBuilderOption {
	return func(s *session) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}
