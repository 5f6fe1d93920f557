package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"
)

// AssignPackageCarrierCommandHandler books a carrier for a single persisted
// package of an order.
type AssignPackageCarrierCommandHandler struct {
	uowFactory PackagesUoWFactory
}

// NewAssignPackageCarrierCommandHandler creates a handler for package carrier
// bookings. Requires a PackagesUoWFactory for transactional persistence.
func NewAssignPackageCarrierCommandHandler(uowFactory PackagesUoWFactory) AssignPackageCarrierCommandHandler {
	return AssignPackageCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the booking command. The ownership lock applies: booking a
// package owned by another user fails with packing.ErrPackageLocked.
func (h *AssignPackageCarrierCommandHandler) Handle(ctx context.Context, cmd AssignPackageCarrierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	packageRepo := uow.PackageRepository()
	packages, err := packageRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	pkg, err := findPackage(packages, cmd.PackageID())
	if err != nil {
		return err
	}

	if err = pkg.AssignCarrier(cmd.ActorID(), cmd.CarrierCode()); err != nil {
		return err
	}

	if err = packageRepo.Update(ctx, aggregate.ID(), pkg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// findPackage resolves a persisted package by id within an order's package set.
func findPackage(packages []*packing.Package, id kernel.UUID) (*packing.Package, error) {
	for _, p := range packages {
		if p.ID() != nil && p.ID().IsEqual(id) {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("packageID", id.String())
}
