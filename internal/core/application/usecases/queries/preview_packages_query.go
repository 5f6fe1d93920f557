package queries

import (
	"errors"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPreviewPackagesQueryIsNotConstructed = errors.New(
	"PreviewPackagesQuery must be created via NewPreviewPackagesQuery constructor",
)

// PreviewPackagesQuery computes the auto-plan draft for the bulk builder: one
// unit per package over the remaining quantities of the order's packable
// lines. The draft is never persisted; the caller edits it and submits it
// through the save flow.
type PreviewPackagesQuery struct { //nolint:recvcheck //using for validation
	orderNumber string
	actorID     string
	defaults    services.PlanDefaults

	guard guard.ConstructorGuard
}

// NewPreviewPackagesQuery creates a query for the auto-plan draft.
func NewPreviewPackagesQuery(
	orderNumber, actorID string,
	defaults services.PlanDefaults,
) (PreviewPackagesQuery, error) {
	query := PreviewPackagesQuery{
		defaults: defaults,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderNumber(orderNumber),
		query.setActorID(actorID),
	); err != nil {
		return PreviewPackagesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewPackagesQuery) Validate() error {
	return q.guard.Validate(ErrPreviewPackagesQueryIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (q PreviewPackagesQuery) OrderNumber() string {
	return q.orderNumber
}

// ActorID returns the user the draft packages are composed for.
func (q PreviewPackagesQuery) ActorID() string {
	return q.actorID
}

// Defaults returns the package attributes applied to every planned package.
func (q PreviewPackagesQuery) Defaults() services.PlanDefaults {
	return q.defaults
}

func (q *PreviewPackagesQuery) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	q.orderNumber = orderNumber
	return nil
}

func (q *PreviewPackagesQuery) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID is required")
	}
	q.actorID = actorID
	return nil
}

// PreviewPackageResponse is the read model of one planned draft package.
// Draft packages have no identifier: they are unpersisted by definition.
type PreviewPackageResponse struct {
	CreatorID   string
	BoxType     string
	Length      float64
	Width       float64
	Height      float64
	Unit        string
	WeightKg    float64
	CarrierCode string
	Contents    []ContentResponse
}
