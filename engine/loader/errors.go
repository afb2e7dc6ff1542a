package loader

import (
	"errors"
	"fmt"
)

// ErrMalformedMesh is the sentinel matched by every MalformedMeshError via errors.Is.
var ErrMalformedMesh = errors.New("malformed mesh")

// MalformedMeshError reports a payload that does not have the binary STL layout.
// It is fatal to the render attempt that produced it; nothing partial is returned.
type MalformedMeshError struct {
	// Reason describes the structural mismatch.
	Reason string

	// Size is the payload length in bytes.
	Size int

	// Err is the underlying decode error, if any (for example a base64 error).
	Err error
}

func (e *MalformedMeshError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed mesh (%d bytes): %s: %v", e.Size, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed mesh (%d bytes): %s", e.Size, e.Reason)
}

func (e *MalformedMeshError) Unwrap() error {
	return e.Err
}

func (e *MalformedMeshError) Is(target error) bool {
	return target == ErrMalformedMesh
}

func malformed(size int, err error, format string, args ...any) *MalformedMeshError {
	return &MalformedMeshError{Reason: fmt.Sprintf(format, args...), Size: size, Err: err}
}
