package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/packing"
)

// SavePackagesCommandHandler handles the business logic for saving a package
// draft: merge against the current authoritative set, validate the result, and
// persist it as a full replacement.
//
// The handler never mutates the command's draft. When any step fails, the
// caller still holds the draft it submitted and can retry.
type SavePackagesCommandHandler struct {
	uowFactory PackagesUoWFactory
}

// NewSavePackagesCommandHandler creates a handler for package draft saves.
// Requires a PackagesUoWFactory for transactional persistence.
func NewSavePackagesCommandHandler(uowFactory PackagesUoWFactory) SavePackagesCommandHandler {
	return SavePackagesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the save command. The merged package set replaces the
// order's stored packages; packages locked by other users survive unchanged.
func (h *SavePackagesCommandHandler) Handle(ctx context.Context, cmd SavePackagesCommand) error {
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
	current, err := packageRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	store, err := packing.NewStore(aggregate, current)
	if err != nil {
		return err
	}

	if err = store.MergeDraft(cmd.Draft(), cmd.ActorID()); err != nil {
		return err
	}

	for _, p := range store.Packages() {
		if err = p.ValidateForSave(); err != nil {
			return err
		}
	}

	if _, err = packageRepo.ReplaceForOrder(ctx, aggregate.ID(), store.Packages()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
