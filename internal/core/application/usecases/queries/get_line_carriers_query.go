package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetLineCarriersQueryIsNotConstructed = errors.New(
	"GetLineCarriersQuery must be created via NewGetLineCarriersQuery constructor",
)

// GetLineCarriersQuery retrieves the carrier split view of one order: the
// current per-line selections and each line's unclaimed remainder.
type GetLineCarriersQuery struct { //nolint:recvcheck //using for validation
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetLineCarriersQuery creates a query for one order's carrier split view.
func NewGetLineCarriersQuery(orderNumber string) (GetLineCarriersQuery, error) {
	query := GetLineCarriersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderNumber(orderNumber); err != nil {
		return GetLineCarriersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLineCarriersQuery) Validate() error {
	return q.guard.Validate(ErrGetLineCarriersQueryIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (q GetLineCarriersQuery) OrderNumber() string {
	return q.orderNumber
}

func (q *GetLineCarriersQuery) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	q.orderNumber = orderNumber
	return nil
}

// SelectionResponse is the read model of one carrier selection.
type SelectionResponse struct {
	ID          kernel.UUID
	LineIndex   int
	Quantity    int
	CarrierCode string
	Status      string
}

// LineClaimSummaryResponse is the claim accounting of one packable line.
type LineClaimSummaryResponse struct {
	LineIndex int
	SKU       string
	Ordered   int
	Claimed   int
	Remaining int
}

// GetLineCarriersQueryResponse is the carrier split view of one order.
type GetLineCarriersQueryResponse struct {
	Lines      []LineClaimSummaryResponse
	Selections []SelectionResponse
}
