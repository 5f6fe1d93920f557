package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/services"
)

// CreateDispatchPlanCommandHandler groups an order's pending carrier selections
// by carrier into a dispatch plan.
type CreateDispatchPlanCommandHandler struct {
	uowFactory SelectionsUoWFactory
	planner    services.DispatchPlanner
}

// NewCreateDispatchPlanCommandHandler creates a handler for dispatch planning.
// Requires a SelectionsUoWFactory for transactional persistence.
func NewCreateDispatchPlanCommandHandler(uowFactory SelectionsUoWFactory) CreateDispatchPlanCommandHandler {
	return CreateDispatchPlanCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewDispatchPlanner(),
	}
}

// Handle processes the command and returns the plan's carrier groups.
// Outside preview mode the grouped selections are marked processing and
// persisted; previewing leaves every selection pending.
func (h *CreateDispatchPlanCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDispatchPlanCommand,
) ([]services.DispatchGroup, error) {
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
	selections, err := selectionRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	ledger, err := carrier.NewLedger(aggregate, selections)
	if err != nil {
		return nil, err
	}

	groups, err := h.planner.Plan(ledger)
	if err != nil {
		return nil, err
	}

	if cmd.Preview() {
		return groups, nil
	}

	h.planner.Apply(groups)
	if err = selectionRepo.ReplaceForOrder(ctx, aggregate.ID(), ledger.Selections()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return groups, nil
}
