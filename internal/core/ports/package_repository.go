package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
)

// PackageRepository defines the persistence contract for the package set of an
// order. Packages are persisted as a set per order: the draft merge produces a
// full replacement list, so the repository replaces rather than patches.
type PackageRepository interface {
	// GetByOrder retrieves all packages of an order with their contents.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*packing.Package, error)

	// ReplaceForOrder persists packages as the complete package set of the
	// order, minting identifiers for packages that have none, and returns the
	// persisted set. Existing packages absent from the list are deleted.
	ReplaceForOrder(ctx context.Context, orderID kernel.UUID, packages []*packing.Package) ([]*packing.Package, error)

	// Update persists changes to a single existing package.
	Update(ctx context.Context, orderID kernel.UUID, aggregate *packing.Package) error
}
