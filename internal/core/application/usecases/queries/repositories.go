// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for the read side of the CQRS architecture.
// Most queries run raw SQL through gorm; the preview query reconstructs domain
// aggregates because its result is computed by a domain service.
package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// StoreUoW provides transactional read access to an order and its
	// packages for queries that need full domain aggregates.
	StoreUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
		PackageRepository() ports.PackageRepository
	}

	// StoreUoWFactory creates new StoreUoW instances.
	StoreUoWFactory interface {
		Create() StoreUoW
	}
)
