package host

import (
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
)

// ServerBuilderOption is a functional option for configuring a Server via NewServer.
type ServerBuilderOption func(*Server)

// WithLogger is an option builder that sets the Logger used by the server and its sessions.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - ServerBuilderOption: a function that applies the logger option to a server
func WithLogger(logger common.Logger) ServerBuilderOption {
	return func(s *Server) {
		s.logger = common.LoggerOrNop(logger)
	}
}

// WithConfig sets the viewer configuration every settings record is built from.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - ServerBuilderOption: a function that applies the configuration to a server
func WithConfig(cfg settings.Config) ServerBuilderOption {
	return func(s *Server) {
		s.doc.cfg = cfg
	}
}

// WithFrameRate makes the server drive frames itself instead of waiting for the page to request
// them. A rate <= 0 leaves frames to the page.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - ServerBuilderOption: a function that applies the frame rate to a server
func WithFrameRate(fps float64) ServerBuilderOption {
	return func(s *Server) {
		s.frameRate = fps
	}
}

// WithDeleteGrace sets how long a removed file may take to reappear before its panels close.
//
// Parameters:
//   - d: the grace period
//
// Returns:
//   - ServerBuilderOption: a function that applies the grace period to a server
func WithDeleteGrace(d time.Duration) ServerBuilderOption {
	return func(s *Server) {
		s.deleteGrace = d
	}
}

// WithCheckOrigin sets the websocket origin check. By default only same-origin pages connect.
//
// Parameters:
//   - check: reports whether a request's origin is allowed
//
// Returns:
//   - ServerBuilderOption: a function that applies the check to a server
func WithCheckOrigin(check func(r *http.Request) bool) ServerBuilderOption {
	return func(s *Server) {
		s.upgrader.CheckOrigin = check
	}
}

// WithSessionOptions forwards options to every session the server creates.
//
// Parameters:
//   - options: session options
//
// Returns:
//   - ServerBuilderOption: a function that applies the options to a server
func WithSessionOptions(options ...engine.SessionBuilderOption) ServerBuilderOption {
	return func(s *Server) {
		s.sessionOptions = append(s.sessionOptions, options...)
	}
}
