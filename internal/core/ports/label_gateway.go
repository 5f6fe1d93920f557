package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
)

// Label is the carrier's response to a successful label issuance.
type Label struct {
	// PDFURL points to the printable label document.
	PDFURL string

	// Code is the carrier tracking code printed on the label.
	Code string
}

// LabelGateway defines the contract with the external carrier aggregation API.
// Label issuance and tracking lookups happen outside this system's transaction
// boundary: a failed issuance leaves any previously persisted carrier
// assignment in place.
type LabelGateway interface {
	// IssueLabel requests a shipping label for one package of an order from
	// the given carrier.
	IssueLabel(ctx context.Context, orderNumber, carrierCode string, pkg *packing.Package) (Label, error)

	// TrackShipment returns the fulfillment status the carrier currently
	// reports for the order's shipment.
	TrackShipment(ctx context.Context, orderNumber, carrierCode string) (order.Status, error)
}
