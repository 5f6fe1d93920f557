package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/order"
)

var (
	// ErrOrderNotLabelable is returned when the order status does not permit
	// whole-order label generation.
	ErrOrderNotLabelable = errors.New("order status does not permit label generation")

	// ErrSplitModeActive is returned when per-line carrier selections exist:
	// the split and classic label paths are mutually exclusive.
	ErrSplitModeActive = errors.New("per-line carrier selections exclude whole-order labels")

	// ErrCarrierNotSelected is returned when label issuance is attempted before
	// any carrier has been selected for the package or the order.
	ErrCarrierNotSelected = errors.New("a carrier must be selected before label generation")
)

// LabelGate is a domain service deciding whether the classic (whole-order)
// label path is open for an order.
//
// Gating rules:
//   - The order status must be one of the labelable states (Prepared,
//     AwaitingPickup, InTransit) - unless the order is royal box, which
//     bypasses the status gate entirely.
//   - No per-line carrier selection may exist. Split exclusivity applies to
//     every order, royal box included.
//
// Label issuance itself is three sequential steps owned by the application
// layer: carrier selection, carrier assignment, then label generation. A
// failure at issuance does not roll back the assignment.
type LabelGate struct{}

// NewLabelGate creates a new LabelGate instance.
func NewLabelGate() LabelGate {
	return LabelGate{}
}

// CanGenerate returns nil when label generation is permitted, or the gating
// error explaining why it is not.
func (g LabelGate) CanGenerate(o *order.Order, ledger *carrier.Ledger) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if ledger != nil && ledger.HasSelections() {
		return ErrSplitModeActive
	}

	if o.IsRoyalBox() {
		return nil
	}

	if !o.Status().IsLabelable() {
		return ErrOrderNotLabelable
	}

	return nil
}

// RequireCarrier checks the carrier precondition for issuing a label for one
// package: the package must have a carrier booked, or the order must carry a
// whole-order carrier to fall back on.
func (g LabelGate) RequireCarrier(o *order.Order, packageCarrierCode string) error {
	if packageCarrierCode != "" {
		return nil
	}
	if o.CarrierCode() != "" {
		return nil
	}
	return ErrCarrierNotSelected
}
