package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through
// one of the constructor functions. It is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object wrapping github.com/google/uuid to provide domain-specific
// behavior and immutability. It is used as the identifier for entities and
// aggregates throughout the domain model.
//
// The zero value is invalid; construct instances via NewUUID, UUIDFromString,
// or UUIDFromBytes. UUID is immutable and safe for concurrent use.
//
// Example:
//
//	id := kernel.NewUUID()
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// This is the primary way to mint identifiers for new entities.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation.
// Standard formats are accepted, including braced and urn-prefixed forms.
// It is typically used when reconstructing entities from persistence or when
// parsing identifiers received from external systems.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice, as stored in binary
// database columns. The result is validated so a nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// A zero value renders as the nil UUID string.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence adapters.
// Use Bytes()[:] where a byte slice is needed.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs represent the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for a zero-value (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
