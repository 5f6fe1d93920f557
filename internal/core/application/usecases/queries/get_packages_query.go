package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPackagesQueryIsNotConstructed = errors.New(
	"GetPackagesQuery must be created via NewGetPackagesQuery constructor",
)

// GetPackagesQuery retrieves the full packing view of one order: its packages
// with contents, the per-line allocation summary, and the total gross weight.
//
// Example:
//
//	query, err := NewGetPackagesQuery("ORD-1001")
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get packages: %w", err)
//	}
//	fmt.Printf("%d packages, %.2f kg total\n", len(view.Packages), view.TotalWeight)
type GetPackagesQuery struct { //nolint:recvcheck //using for validation
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetPackagesQuery creates a query for one order's packing view.
func NewGetPackagesQuery(orderNumber string) (GetPackagesQuery, error) {
	query := GetPackagesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderNumber(orderNumber); err != nil {
		return GetPackagesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetPackagesQueryIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (q GetPackagesQuery) OrderNumber() string {
	return q.orderNumber
}

func (q *GetPackagesQuery) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	q.orderNumber = orderNumber
	return nil
}

// ContentResponse is one per-line allocation row inside a package.
type ContentResponse struct {
	LineIndex   int
	SKU         string
	Quantity    int
	CarrierCode string
}

// PackageResponse is the read model of one package.
type PackageResponse struct {
	ID          kernel.UUID
	CreatorID   string
	BoxType     string
	Length      float64
	Width       float64
	Height      float64
	Unit        string
	WeightKg    float64
	CarrierCode string
	LabelCode   string
	LabelPDFURL string
	Contents    []ContentResponse
}

// LineSummaryResponse is the allocation summary of one packable order line.
type LineSummaryResponse struct {
	LineIndex   int
	SKU         string
	ProductName string
	Ordered     int
	Allocated   int
	Remaining   int
}

// GetPackagesQueryResponse is the complete packing view of one order.
type GetPackagesQueryResponse struct {
	Packages    []PackageResponse
	Lines       []LineSummaryResponse
	TotalWeight float64
}
