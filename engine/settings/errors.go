package settings

import (
	"errors"
	"fmt"
)

// ErrMissingSettings matches every *MissingSettingsError via errors.Is.
var ErrMissingSettings = errors.New("missing settings")

// MissingSettingsError reports that the settings record was absent or could not be parsed.
// Nothing can be rendered without it.
type MissingSettingsError struct {
	Reason string
	Err    error
}

func (e *MissingSettingsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing settings: %s: %v", e.Reason, e.Err)
	}
	return "missing settings: " + e.Reason
}

func (e *MissingSettingsError) Unwrap() error {
	return e.Err
}

func (e *MissingSettingsError) Is(target error) bool {
	return target == ErrMissingSettings
}
