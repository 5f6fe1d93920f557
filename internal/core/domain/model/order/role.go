package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role classifies a line's position in a product bundle.
// Roles are derived during bundle expansion, before the order reaches the
// packing surface, and never change afterwards.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleStandalone is an ordinary line not belonging to any bundle.
	RoleStandalone

	// RoleParent is the composite line representing a bundle product.
	RoleParent

	// RoleChild is a constituent component of a bundle. Child lines are
	// excluded from every packing and carrier-claim surface.
	RoleChild
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleStandalone: "Standalone",
		RoleParent:     "Parent",
		RoleChild:      "Child",
	}
}

// RoleFromString parses a role from its string representation.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid bundle role", s),
	)
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid bundle role", r),
		)
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid bundle role", r),
		)
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// IsPackable reports whether lines with this role may be allocated into
// packages or claimed by carrier selections. Only standalone and bundle-parent
// lines are addressable; child lines are hidden by construction.
func (r Role) IsPackable() bool {
	return r == RoleStandalone || r == RoleParent
}
