// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with its
// immutable line items, bundle roles, and fulfillment lifecycle.
//
// The package includes:
//   - Order: The aggregate root carrying lines, roles, status, and carrier assignment
//   - Line: An immutable value object for one ordered item, identified by index
//   - Role: The bundle classification of a line (standalone, parent, child)
//   - Status: A state machine that enforces valid fulfillment status transitions
//
// Key business rules:
//   - Lines and bundle roles are frozen once the order is created
//   - Child-role lines are excluded from all packing and carrier-claim surfaces
//   - Status follows the chain Pending -> ... -> Delivered with exception branches
//     reachable from any in-flight state
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
