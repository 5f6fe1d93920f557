// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// SelectionRepoFactory provides access to the carrier selection repository
	// within a transaction.
	SelectionRepoFactory interface {
		SelectionRepository() ports.SelectionRepository
	}

	// PackagesUoW manages transactions for package composition operations:
	// the order is read, the package set is written.
	PackagesUoW interface {
		TxManager
		OrderRepoFactory
		PackageRepoFactory
	}

	// PackagesUoWFactory creates new package unit of work instances.
	PackagesUoWFactory interface {
		Create() PackagesUoW
	}

	// SelectionsUoW manages transactions for carrier split operations:
	// the order is read, the selection set is written.
	SelectionsUoW interface {
		TxManager
		OrderRepoFactory
		SelectionRepoFactory
	}

	// SelectionsUoWFactory creates new selection unit of work instances.
	SelectionsUoWFactory interface {
		Create() SelectionsUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across the order, package, and selection
	// aggregates. Used by commands that read the full fulfillment state of an
	// order, label generation in particular.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   packageRepo := uow.PackageRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PackageRepoFactory
		SelectionRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
