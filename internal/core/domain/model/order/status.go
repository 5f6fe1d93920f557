package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the fulfillment lifecycle state of an order.
// It implements a state machine with defined transitions so that orders always
// follow the operational workflow of the warehouse.
//
// Main chain:
//
//	Pending -> Preparing -> Prepared -> AwaitingPickup -> InTransit -> OutForDelivery -> Delivered
//
// Side branches (DeliveryFailed, OnHold, Returned, Cancelled) are reachable from
// any in-flight state. OnHold and DeliveryFailed are themselves in-flight: an
// order can resume the main chain from them. Delivered, Returned, and Cancelled
// are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly placed order.
	Pending

	// Preparing indicates the order is being picked and packed.
	Preparing

	// Prepared indicates packing is complete and the order is ready for carrier handoff.
	Prepared

	// AwaitingPickup indicates the carrier has been booked and pickup is expected.
	AwaitingPickup

	// InTransit indicates the carrier has collected the shipment.
	InTransit

	// OutForDelivery indicates the shipment is on the final delivery leg.
	OutForDelivery

	// Delivered indicates the shipment reached the customer. Terminal.
	Delivered

	// DeliveryFailed indicates a delivery attempt failed; the order may be retried.
	DeliveryFailed

	// OnHold indicates fulfillment is paused; the order may resume later.
	OnHold

	// Returned indicates the shipment came back to the warehouse. Terminal.
	Returned

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Preparing:      "Preparing",
		Prepared:       "Prepared",
		AwaitingPickup: "AwaitingPickup",
		InTransit:      "InTransit",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		DeliveryFailed: "DeliveryFailed",
		OnHold:         "OnHold",
		Returned:       "Returned",
		Cancelled:      "Cancelled",
	}
}

// chainSuccessor maps each main-chain status to its immediate successor.
func chainSuccessor() map[Status]Status {
	return map[Status]Status{
		Pending:        Preparing,
		Preparing:      Prepared,
		Prepared:       AwaitingPickup,
		AwaitingPickup: InTransit,
		InTransit:      OutForDelivery,
		OutForDelivery: Delivered,
	}
}

// Validate checks if the Status value is one of the defined statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string name.
// Used when reconstructing orders from persistence or external payloads.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status name", s),
	)
}

// IsTerminal reports whether no further transitions are allowed from this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Cancelled
}

// IsSideBranch reports whether the status is one of the exception branches
// outside the main fulfillment chain.
func (s Status) IsSideBranch() bool {
	return s == DeliveryFailed || s == OnHold || s == Returned || s == Cancelled
}

// IsInFlight reports whether the order is still being worked.
// Main-chain statuses before Delivered are in-flight, as are the resumable side
// branches DeliveryFailed and OnHold.
func (s Status) IsInFlight() bool {
	if s == Unknown || s.IsTerminal() {
		return false
	}
	return true
}

// IsLabelable reports whether the whole-order (classic) label path is open in
// this status. Labels are issued once packing is finished and before the
// shipment completes its transit leg.
func (s Status) IsLabelable() bool {
	return s == Prepared || s == AwaitingPickup || s == InTransit
}

// CanTransitionTo reports whether the state machine permits moving to next.
//
// Permitted transitions:
//   - the immediate successor on the main chain
//   - any side branch, from any in-flight state
//   - any main-chain in-flight status, when resuming from OnHold or DeliveryFailed
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}
	if s == next || s.IsTerminal() {
		return false
	}

	if successor, ok := chainSuccessor()[s]; ok && successor == next {
		return true
	}

	if s.IsInFlight() && next.IsSideBranch() {
		return true
	}

	// Resumption from a recoverable side branch back onto the chain.
	if (s == OnHold || s == DeliveryFailed) && next.IsInFlight() && !next.IsSideBranch() {
		return true
	}

	return false
}

// TransitionTo validates and performs the transition, returning the new status.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status transition is invalid",
			fmt.Errorf("cannot move from %s to %s", s.String(), next.String()),
		)
	}
	return next, nil
}
