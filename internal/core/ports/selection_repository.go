package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
)

// SelectionRepository defines the persistence contract for the carrier
// selections of an order. Like packages, selections are written as a set:
// the ledger's upsert produces the authoritative selection list.
type SelectionRepository interface {
	// GetByOrder retrieves all carrier selections of an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*carrier.Selection, error)

	// ReplaceForOrder persists selections as the complete selection set of the
	// order. Existing selections absent from the list are deleted.
	ReplaceForOrder(ctx context.Context, orderID kernel.UUID, selections []*carrier.Selection) error
}
