package errs

import (
	"errors"
	"fmt"
)

// ErrObjectNotFound is the sentinel error for lookups that produced no object.
var ErrObjectNotFound = errors.New("object not found")

// ObjectNotFoundError reports that an object identified by ID could not be found.
// ParamName names the identifier that was used for the lookup.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

// Error formats the error message. The short form is used when no cause is
// present; the long form includes the parameter name and the cause.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(fmt.Sprintf("%s", e.ID)), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(fmt.Sprintf("%s", e.ID)))
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}
