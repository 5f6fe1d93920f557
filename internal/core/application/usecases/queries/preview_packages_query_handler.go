package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
)

// PreviewPackagesQueryHandler computes the auto-plan draft for one order.
// Unlike the raw-SQL queries it goes through the repositories: the plan is
// produced by the domain planner over the real aggregates, so the preview uses
// exactly the conservation arithmetic the save path will apply.
type PreviewPackagesQueryHandler struct {
	uowFactory StoreUoWFactory
	planner    services.PackagePlanner
}

// NewPreviewPackagesQueryHandler creates a handler for auto-plan previews.
// Requires a StoreUoWFactory for repository access.
func NewPreviewPackagesQueryHandler(uowFactory StoreUoWFactory) PreviewPackagesQueryHandler {
	return PreviewPackagesQueryHandler{
		uowFactory: uowFactory,
		planner:    services.NewPackagePlanner(),
	}
}

// Handle executes the query and returns the planned draft packages.
// Nothing is persisted.
func (h PreviewPackagesQueryHandler) Handle(
	ctx context.Context,
	query PreviewPackagesQuery,
) ([]PreviewPackageResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByNumber(ctx, query.OrderNumber())
	if err != nil {
		return nil, err
	}

	current, err := uow.PackageRepository().GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	draft, err := h.planner.Preview(aggregate, current, query.ActorID(), query.Defaults())
	if err != nil {
		return nil, err
	}

	responses := make([]PreviewPackageResponse, 0, len(draft))
	for _, pkg := range draft {
		responses = append(responses, toPreviewPackageResponse(pkg))
	}
	return responses, nil
}

func toPreviewPackageResponse(pkg *packing.Package) PreviewPackageResponse {
	response := PreviewPackageResponse{
		CreatorID:   pkg.CreatorID(),
		BoxType:     pkg.BoxType(),
		WeightKg:    pkg.WeightKg(),
		CarrierCode: pkg.CarrierCode(),
	}

	if dims := pkg.InnerDimensions(); dims.Validate() == nil {
		response.Length = dims.Length()
		response.Width = dims.Width()
		response.Height = dims.Height()
		response.Unit = string(dims.Unit())
	}

	for _, content := range pkg.Contents() {
		response.Contents = append(response.Contents, ContentResponse{
			LineIndex:   content.LineIndex(),
			SKU:         content.SKU(),
			Quantity:    content.Quantity(),
			CarrierCode: content.CarrierCode(),
		})
	}
	return response
}
