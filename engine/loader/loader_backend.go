package loader

import (
	"github.com/Carmen-Shannon/oxy-stl/engine/model"
)

// loaderBackend defines the format-specific half of the Loader.
// Concrete implementations (e.g., stlLoaderBackend) handle the byte layout.
type loaderBackend interface {
	// Decode parses a complete in-memory payload.
	//
	// Parameters:
	//   - payload: the raw file bytes
	//
	// Returns:
	//   - *model.MeshGeometry: the decoded mesh
	//   - error: a *MalformedMeshError if the payload does not match the layout
	Decode(payload []byte) (*model.MeshGeometry, error)

	// Extensions lists the lower-case file extensions this backend accepts, dot included.
	//
	// Returns:
	//   - []string: accepted extensions
	Extensions() []string
}
