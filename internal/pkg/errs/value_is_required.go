package errs

import (
	"errors"
	"fmt"
)

// ErrValueIsRequired is the sentinel error for missing required values.
var ErrValueIsRequired = errors.New("value is required")

// ValueIsRequiredError reports that the named required parameter was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
	}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// Error formats the error message, appending the cause when present.
func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}
