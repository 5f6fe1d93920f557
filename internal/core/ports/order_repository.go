package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are created upstream (order intake is an external collaborator);
// this engine reads them and updates their fulfillment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its external order number,
	// the identity used on every request boundary.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllInCarrierTransit retrieves all orders whose shipments are with a
	// carrier: AwaitingPickup, InTransit, or OutForDelivery. Used by the
	// tracking refresh job to poll carrier tracking states.
	GetAllInCarrierTransit(ctx context.Context) ([]*order.Order, error)
}
