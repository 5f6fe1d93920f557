package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
)

// SetLineCarriersCommandHandler applies per-line carrier claims through the
// carrier split ledger and persists the resulting selection set.
type SetLineCarriersCommandHandler struct {
	uowFactory SelectionsUoWFactory
}

// NewSetLineCarriersCommandHandler creates a handler for per-line carrier
// claims. Requires a SelectionsUoWFactory for transactional persistence.
func NewSetLineCarriersCommandHandler(uowFactory SelectionsUoWFactory) SetLineCarriersCommandHandler {
	return SetLineCarriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claims and returns the resulting selections.
// Merge-mode claims clamp to each line's remaining quantity; replace mode
// discards prior selections first.
func (h *SetLineCarriersCommandHandler) Handle(
	ctx context.Context,
	cmd SetLineCarriersCommand,
) ([]*carrier.Selection, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	selectionRepo := uow.SelectionRepository()
	current, err := selectionRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	ledger, err := carrier.NewLedger(aggregate, current)
	if err != nil {
		return nil, err
	}

	selections, err := ledger.SetLineCarriers(cmd.Claims(), cmd.Mode())
	if err != nil {
		return nil, err
	}

	if err = selectionRepo.ReplaceForOrder(ctx, aggregate.ID(), selections); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return selections, nil
}
