package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GenerateLabelsCommandHandler issues labels for every package of an order in
// one run. The run is not atomic: each package is attempted independently and
// reported as generated, skipped, or failed. Labels issued before a failure
// stay issued.
type GenerateLabelsCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.LabelGateway
	gate       services.LabelGate
}

// NewGenerateLabelsCommandHandler creates a handler for bulk label runs.
// Requires a UoWFactory and the carrier gateway.
func NewGenerateLabelsCommandHandler(
	uowFactory UoWFactory,
	gateway ports.LabelGateway,
) GenerateLabelsCommandHandler {
	return GenerateLabelsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		gate:       services.NewLabelGate(),
	}
}

// Handle processes the bulk run and returns the per-package outcomes.
// Gate failures (status, split exclusivity) fail the whole run before any
// carrier call is made.
func (h *GenerateLabelsCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateLabelsCommand,
) ([]BulkLabelResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, packages, err := h.load(ctx, cmd)
	if err != nil {
		return nil, err
	}

	results := make([]BulkLabelResult, 0, len(packages))
	labeled := make([]*packing.Package, 0, len(packages))
	for _, pkg := range packages {
		result := h.issueOne(ctx, cmd, aggregate, pkg)
		if result.Outcome == BulkLabelGenerated {
			labeled = append(labeled, pkg)
		}
		results = append(results, result)
	}

	if err = h.persist(ctx, aggregate, labeled); err != nil {
		return nil, err
	}

	return results, nil
}

// load fetches the order and its packages and runs the gate checks.
func (h *GenerateLabelsCommandHandler) load(
	ctx context.Context,
	cmd GenerateLabelsCommand,
) (*order.Order, []*packing.Package, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, nil, err
	}

	selections, err := uow.SelectionRepository().GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, nil, err
	}

	ledger, err := carrier.NewLedger(aggregate, selections)
	if err != nil {
		return nil, nil, err
	}

	if err = h.gate.CanGenerate(aggregate, ledger); err != nil {
		return nil, nil, err
	}

	packages, err := uow.PackageRepository().GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return aggregate, packages, nil
}

// issueOne attempts issuance for one package and classifies the outcome.
func (h *GenerateLabelsCommandHandler) issueOne(
	ctx context.Context,
	cmd GenerateLabelsCommand,
	aggregate *order.Order,
	pkg *packing.Package,
) BulkLabelResult {
	result := BulkLabelResult{PackageID: *pkg.ID()}

	if pkg.HasLabel() && !cmd.Regenerate() {
		result.Outcome = BulkLabelSkipped
		result.Reason = "already labeled"
		return result
	}

	carrierCode := pkg.CarrierCode()
	if carrierCode == "" {
		carrierCode = aggregate.CarrierCode()
	}
	if carrierCode == "" {
		result.Outcome = BulkLabelSkipped
		result.Reason = "no carrier selected"
		return result
	}

	label, err := h.gateway.IssueLabel(ctx, aggregate.Number(), carrierCode, pkg)
	if err != nil {
		result.Outcome = BulkLabelFailed
		result.Reason = err.Error()
		return result
	}

	if err = pkg.RecordLabel(label.Code, label.PDFURL); err != nil {
		result.Outcome = BulkLabelFailed
		result.Reason = err.Error()
		return result
	}

	result.Outcome = BulkLabelGenerated
	result.Label = label
	return result
}

// persist stores the recorded labels of this run in one transaction.
func (h *GenerateLabelsCommandHandler) persist(
	ctx context.Context,
	aggregate *order.Order,
	labeled []*packing.Package,
) error {
	if len(labeled) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	for _, pkg := range labeled {
		if err := packageRepo.Update(ctx, aggregate.ID(), pkg); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
