package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValueIsInvalid is the sentinel error for values that failed validation.
var ErrValueIsInvalid = errors.New("value is invalid")

// ValueIsInvalidError reports that the named parameter holds an invalid value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
	}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// Error formats the error message, appending the cause when present.
func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// sanitize collapses line breaks so error messages stay on a single log line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
