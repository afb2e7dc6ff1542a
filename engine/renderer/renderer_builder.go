package renderer

import "github.com/Carmen-Shannon/oxy-stl/common"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLogger is an option builder that sets the Logger used for renderer diagnostics.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger common.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = common.LoggerOrNop(logger)
	}
}

// WithSkipUnchanged controls whether a frame identical to the previous one is dropped.
//
// Parameters:
//   - skip: true to drop unchanged frames
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithSkipUnchanged(skip bool) RendererBuilderOption {
	return func(r *renderer) {
		r.skipUnchanged = skip
	}
}

// WithSize is an option builder that sets the initial viewport size.
//
// Parameters:
//   - width, height: the size in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width, r.height = width, height
	}
}
