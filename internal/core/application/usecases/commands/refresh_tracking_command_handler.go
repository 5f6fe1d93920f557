package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// RefreshTrackingCommandHandler polls the carrier gateway for every order in
// carrier transit and advances order statuses along the fulfillment chain.
//
// Polling is best-effort: a gateway failure for one order is logged and
// skipped, and the next run retries it. Reported states that are not valid
// transitions from the current status are ignored.
type RefreshTrackingCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.LabelGateway
	logger     *slog.Logger
}

// NewRefreshTrackingCommandHandler creates a handler for tracking refreshes.
// Requires an OrderUoWFactory, the carrier gateway, and a logger for
// per-order lookup failures.
func NewRefreshTrackingCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.LabelGateway,
	logger *slog.Logger,
) RefreshTrackingCommandHandler {
	return RefreshTrackingCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger,
	}
}

// Handle processes the refresh command across all orders in carrier transit.
func (h *RefreshTrackingCommandHandler) Handle(ctx context.Context, cmd RefreshTrackingCommand) error {
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
	orders, err := orderRepo.GetAllInCarrierTransit(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range orders {
		if aggregate.CarrierCode() == "" {
			continue
		}

		reported, trackErr := h.gateway.TrackShipment(ctx, aggregate.Number(), aggregate.CarrierCode())
		if trackErr != nil {
			h.logger.Warn("tracking lookup failed",
				"orderNumber", aggregate.Number(),
				"carrierCode", aggregate.CarrierCode(),
				"error", trackErr)
			continue
		}

		if reported == aggregate.Status() || !aggregate.Status().CanTransitionTo(reported) {
			continue
		}

		if err = aggregate.ChangeStatus(reported); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
