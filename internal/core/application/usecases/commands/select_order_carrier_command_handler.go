package commands

import (
	"context"
)

// SelectOrderCarrierCommandHandler stamps a whole-order carrier selection onto
// an order and its packages.
type SelectOrderCarrierCommandHandler struct {
	uowFactory PackagesUoWFactory
}

// NewSelectOrderCarrierCommandHandler creates a handler for whole-order carrier
// selection. Requires a PackagesUoWFactory for transactional persistence.
func NewSelectOrderCarrierCommandHandler(uowFactory PackagesUoWFactory) SelectOrderCarrierCommandHandler {
	return SelectOrderCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the selection command. Scope all also sets the order-level
// carrier; scope missing-only touches only packages without one. Packages
// locked by other users are skipped in both scopes.
func (h *SelectOrderCarrierCommandHandler) Handle(ctx context.Context, cmd SelectOrderCarrierCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if cmd.Scope() == SelectScopeAll {
		if err = aggregate.AssignCarrier(cmd.CarrierCode()); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	packageRepo := uow.PackageRepository()
	packages, err := packageRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if !pkg.CanEdit(cmd.ActorID()) {
			continue
		}
		if cmd.Scope() == SelectScopeMissingOnly && pkg.CarrierCode() != "" {
			continue
		}

		if err = pkg.AssignCarrier(cmd.ActorID(), cmd.CarrierCode()); err != nil {
			return err
		}
		if err = packageRepo.Update(ctx, aggregate.ID(), pkg); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
