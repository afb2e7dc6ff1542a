package engine

import (
	"errors"
	"fmt"
)

// ErrResourceUnavailable matches every *ResourceUnavailableError via errors.Is.
var ErrResourceUnavailable = errors.New("resource unavailable")

// ErrSessionClosed is returned by a Session used after Dispose.
var ErrSessionClosed = errors.New("session closed")

// ResourceUnavailableError reports that the document's file vanished after it was opened.
// A session treats it as a deletion: the panel closes without showing an error.
type ResourceUnavailableError struct {
	Key string
	Err error
}

func (e *ResourceUnavailableError) Error() string {
	return fmt.Sprintf("resource unavailable: %s: %v", e.Key, e.Err)
}

func (e *ResourceUnavailableError) Unwrap() error {
	return e.Err
}

func (e *ResourceUnavailableError) Is(target error) bool {
	return target == ErrResourceUnavailable
}
