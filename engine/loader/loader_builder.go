package loader

import (
	"github.com/Carmen-Shannon/oxy-stl/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithLogger is an option builder that sets the Logger used for decode diagnostics.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger common.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = common.LoggerOrNop(logger)
	}
}

// WithWorkers sets how many pooled goroutines decode large payloads.
// Values <= 0 select runtime.NumCPU()-1 (at least one).
//
// Parameters:
//   - n: number of workers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// WithParallelThreshold sets the triangle count from which decoding fans out to the worker pool.
// A value <= 0 keeps every decode on the calling goroutine.
//
// Parameters:
//   - triangles: the threshold
//
// Returns:
//   - LoaderBuilderOption: a function that applies the threshold to a loader
func WithParallelThreshold(triangles int) LoaderBuilderOption {
	return func(l *loader) {
		l.parallelThreshold = triangles
	}
}
