// Package carrier provides domain entities and business logic for splitting an
// order's lines across shipping carriers, independently of how the lines are
// divided into packages.
//
// The package includes:
//   - Selection: A claim assigning a quantity of one line to one carrier
//   - Ledger: The selection set of an order with remaining-quantity accounting
//     and the merge/replace upsert semantics
//
// Key business rules:
//   - Claimed quantities per line never exceed the ordered quantity; merge-mode
//     additions clamp to what remains
//   - Existing selections are never silently overwritten unless mode is replace
//   - Bundle-child lines are excluded from the claim surface by construction
//   - Any existing selection puts the order in split mode, which excludes the
//     classic whole-order label path
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package carrier
