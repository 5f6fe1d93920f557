// Package packing provides domain entities and business logic for dividing an
// order's line items across physical shipping packages. It implements the
// Package entity, its Content rows, and the Store that operates on the package
// set of one order.
//
// The package includes:
//   - Package: A shipping container with box type, dimensions, weight, carrier,
//     and per-line content allocations, subject to ownership locking
//   - Content: A value object for the quantity of one line inside one package
//   - Store: The package set of an order with the allocation ledger, the
//     lock-filtered mutation operations, and the draft merge reconciler
//
// Key business rules:
//   - Conservation: allocations per line never exceed the ordered quantity;
//     quantity writes clamp instead of rejecting, so no invalid state is
//     representable
//   - Ownership: a persisted package is editable only by its creator; the
//     CanEdit capability check is the single access-control mechanism
//   - Draft merges can never alter or delete another user's package
//   - Bundle-child lines are excluded from the packing surface by construction
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package packing
