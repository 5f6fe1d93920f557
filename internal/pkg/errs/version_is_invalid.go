package errs

import (
	"errors"
	"fmt"
)

// ErrVersionIsInvalid is the sentinel error for invalid aggregate versions.
var ErrVersionIsInvalid = errors.New("version is invalid")

// VersionIsInvalidError reports that the named version parameter is invalid.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
	}
}

// Error formats the error message, appending the cause when present.
func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
