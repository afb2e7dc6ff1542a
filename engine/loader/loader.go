package loader

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/model"
)

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeSTL selects the binary STL backend.
	BackendTypeSTL LoaderBackendType = iota
)

// DefaultParallelThreshold is the triangle count from which decoding is spread over the worker pool.
const DefaultParallelThreshold = 1 << 16

// loader is the implementation of the Loader interface.
type loader struct {
	logger common.Logger

	workers           int
	parallelThreshold int

	backend loaderBackend
}

// Loader decodes a mesh payload into a MeshGeometry. Decoding is pure: it performs no I/O
// beyond reading the supplied bytes and keeps no state between calls.
type Loader interface {
	// Decode parses raw payload bytes.
	//
	// Parameters:
	//   - payload: the raw mesh file contents
	//
	// Returns:
	//   - *model.MeshGeometry: the decoded mesh
	//   - error: a *MalformedMeshError if the payload does not match the expected layout
	Decode(payload []byte) (*model.MeshGeometry, error)

	// DecodeBase64 parses a payload transported as standard base64 text, as embedded in a
	// settings record. Invalid base64 is reported as a *MalformedMeshError.
	//
	// Parameters:
	//   - text: the base64 payload
	//
	// Returns:
	//   - *model.MeshGeometry: the decoded mesh
	//   - error: a *MalformedMeshError on bad encoding or layout
	DecodeBase64(text string) (*model.MeshGeometry, error)

	// LoadReader reads r to the end and decodes it.
	//
	// Parameters:
	//   - r: the reader providing mesh bytes
	//
	// Returns:
	//   - *model.MeshGeometry: the decoded mesh
	//   - error: read error or *MalformedMeshError
	LoadReader(r io.Reader) (*model.MeshGeometry, error)

	// LoadFile reads and decodes a mesh file. The extension must be one the backend accepts.
	//
	// Parameters:
	//   - path: the file path
	//
	// Returns:
	//   - *model.MeshGeometry: the decoded mesh
	//   - error: unsupported extension, I/O error or *MalformedMeshError
	LoadFile(path string) (*model.MeshGeometry, error)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeSTL)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger:            common.NewNopLogger(),
		parallelThreshold: DefaultParallelThreshold,
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeSTL:
		l.backend = newSTLLoaderBackend(l.logger, l.workers, l.parallelThreshold)
	default:
		panic(fmt.Sprintf("loader: unknown backend type %d", backendType))
	}
	return l
}

func (l *loader) Decode(payload []byte) (*model.MeshGeometry, error) {
	return l.backend.Decode(payload)
}

func (l *loader) DecodeBase64(text string) (*model.MeshGeometry, error) {
	payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, malformed(len(text), err, "payload is not valid base64")
	}
	return l.backend.Decode(payload)
}

func (l *loader) LoadReader(r io.Reader) (*model.MeshGeometry, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read mesh: %w", err)
	}
	return l.backend.Decode(payload)
}

func (l *loader) LoadFile(path string) (*model.MeshGeometry, error) {
	if err := l.checkExtension(path); err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	m, err := l.backend.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return m, nil
}

// checkExtension rejects paths whose extension the backend does not handle.
func (l *loader) checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(l.backend.Extensions(), ext) {
		return nil
	}
	return fmt.Errorf("unsupported mesh format: %q", ext)
}
