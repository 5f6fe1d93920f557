package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GenerateLabelCommandHandler issues a shipping label for one package.
//
// Issuance is three sequential steps, not one atomic operation:
//
//  1. the label gate checks status and split exclusivity,
//  2. a missing package carrier is filled from the whole-order carrier and
//     committed,
//  3. the label is requested from the carrier gateway and recorded.
//
// A failure at step 3 does not roll back the carrier assignment of step 2.
type GenerateLabelCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.LabelGateway
	gate       services.LabelGate
}

// NewGenerateLabelCommandHandler creates a handler for single-package label
// issuance. Requires a UoWFactory and the carrier gateway.
func NewGenerateLabelCommandHandler(
	uowFactory UoWFactory,
	gateway ports.LabelGateway,
) GenerateLabelCommandHandler {
	return GenerateLabelCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		gate:       services.NewLabelGate(),
	}
}

// Handle processes the label generation command and returns the issued label.
// A failed issuance leaves the order and its packages unlabeled.
func (h *GenerateLabelCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateLabelCommand,
) (ports.Label, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Label{}, err
	}

	aggregate, pkg, carrierCode, err := h.prepare(ctx, cmd)
	if err != nil {
		return ports.Label{}, err
	}

	// The gateway call happens outside any transaction: the carrier assignment
	// made in prepare stays committed even when issuance fails.
	label, err := h.gateway.IssueLabel(ctx, aggregate.Number(), carrierCode, pkg)
	if err != nil {
		return ports.Label{}, err
	}

	if err = h.record(ctx, aggregate, pkg, label); err != nil {
		return ports.Label{}, err
	}

	return label, nil
}

// prepare runs the gate checks and commits the carrier assignment step.
// It returns the order, the target package, and the effective carrier code.
func (h *GenerateLabelCommandHandler) prepare(
	ctx context.Context,
	cmd GenerateLabelCommand,
) (*order.Order, *packing.Package, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, nil, "", err
	}

	selections, err := uow.SelectionRepository().GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, nil, "", err
	}

	ledger, err := carrier.NewLedger(aggregate, selections)
	if err != nil {
		return nil, nil, "", err
	}

	if err = h.gate.CanGenerate(aggregate, ledger); err != nil {
		return nil, nil, "", err
	}

	packageRepo := uow.PackageRepository()
	packages, err := packageRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, nil, "", err
	}

	pkg, err := findPackage(packages, cmd.PackageID())
	if err != nil {
		return nil, nil, "", err
	}

	if err = h.gate.RequireCarrier(aggregate, pkg.CarrierCode()); err != nil {
		return nil, nil, "", err
	}

	carrierCode := pkg.CarrierCode()
	if carrierCode == "" {
		carrierCode = aggregate.CarrierCode()
		if err = pkg.AssignCarrier(cmd.ActorID(), carrierCode); err != nil {
			return nil, nil, "", err
		}
		if err = packageRepo.Update(ctx, aggregate.ID(), pkg); err != nil {
			return nil, nil, "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, "", err
	}

	return aggregate, pkg, carrierCode, nil
}

// record persists the issued label on the package in its own transaction.
func (h *GenerateLabelCommandHandler) record(
	ctx context.Context,
	aggregate *order.Order,
	pkg *packing.Package,
	label ports.Label,
) error {
	if err := pkg.RecordLabel(label.Code, label.PDFURL); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PackageRepository().Update(ctx, aggregate.ID(), pkg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
