// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - LabelGate: Gates whole-order label generation on order status and
//     carrier-split exclusivity
//   - PackagePlanner: Produces the one-unit-per-package auto-plan draft
//   - DispatchPlanner: Groups pending carrier selections into dispatch plans
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
