package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createPersistedPackage(t *testing.T, creatorID, carrierCode string) *packing.Package {
	t.Helper()

	content, err := packing.NewContent(0, "SKU-A", 2, "")
	require.NoError(t, err)
	p, err := packing.RestorePackage(kernel.NewUUID(), creatorID, "medium",
		createHandlerDims(t), 1.0, carrierCode, []packing.Content{content})
	require.NoError(t, err)
	return p
}

func TestGenerateLabelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Prepared, false)
	pkg := createPersistedPackage(t, "user-a", "dhl")
	issued := ports.Label{PDFURL: "https://labels.example/TRK-1.pdf", Code: "TRK-1"}

	cmd, err := commands.NewGenerateLabelCommand("ORD-1001", *pkg.ID(), "user-a")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	selectionRepo := new(MockSelectionRepository)
	gateway := new(MockLabelGateway)
	prepareUoW := new(MockUoW)
	recordUoW := new(MockUoW)

	mock.InOrder(
		prepareUoW.On("Begin", ctx).Return(nil).Once(),
		prepareUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		prepareUoW.On("SelectionRepository").Return(selectionRepo).Once(),
		selectionRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*carrier.Selection{}, nil).Once(),
		prepareUoW.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*packing.Package{pkg}, nil).Once(),
		prepareUoW.On("Commit", ctx).Return(nil).Once(),
		prepareUoW.On("Rollback", ctx).Return(nil).Once(),
		gateway.On("IssueLabel", ctx, "ORD-1001", "dhl", pkg).Return(issued, nil).Once(),
		recordUoW.On("Begin", ctx).Return(nil).Once(),
		recordUoW.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Update", ctx, testOrder.ID(), pkg).Return(nil).Once(),
		recordUoW.On("Commit", ctx).Return(nil).Once(),
		recordUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(prepareUoW).Once()
	factory.On("Create").Return(recordUoW).Once()

	handler := commands.NewGenerateLabelCommandHandler(factory, gateway)
	label, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, issued, label)
	assert.Equal(t, "TRK-1", pkg.LabelCode())
	gateway.AssertExpectations(t)
	prepareUoW.AssertExpectations(t)
	recordUoW.AssertExpectations(t)
}

func TestGenerateLabelCommandHandler_Handle_AssignsOrderCarrier(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Prepared, false)
	require.NoError(t, testOrder.AssignCarrier("ups"))
	pkg := createPersistedPackage(t, "user-a", "") // no package carrier yet

	cmd, err := commands.NewGenerateLabelCommand("ORD-1001", *pkg.ID(), "user-a")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	selectionRepo := new(MockSelectionRepository)
	gateway := new(MockLabelGateway)
	prepareUoW := new(MockUoW)
	recordUoW := new(MockUoW)
	issued := ports.Label{PDFURL: "https://labels.example/TRK-2.pdf", Code: "TRK-2"}

	mock.InOrder(
		prepareUoW.On("Begin", ctx).Return(nil).Once(),
		prepareUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		prepareUoW.On("SelectionRepository").Return(selectionRepo).Once(),
		selectionRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*carrier.Selection{}, nil).Once(),
		prepareUoW.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*packing.Package{pkg}, nil).Once(),
		packageRepo.On("Update", ctx, testOrder.ID(), pkg).Return(nil).Once(),
		prepareUoW.On("Commit", ctx).Return(nil).Once(),
		prepareUoW.On("Rollback", ctx).Return(nil).Once(),
		gateway.On("IssueLabel", ctx, "ORD-1001", "ups", pkg).Return(issued, nil).Once(),
		recordUoW.On("Begin", ctx).Return(nil).Once(),
		recordUoW.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Update", ctx, testOrder.ID(), pkg).Return(nil).Once(),
		recordUoW.On("Commit", ctx).Return(nil).Once(),
		recordUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(prepareUoW).Once()
	factory.On("Create").Return(recordUoW).Once()

	handler := commands.NewGenerateLabelCommandHandler(factory, gateway)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ups", pkg.CarrierCode())
}

func TestGenerateLabelCommandHandler_Handle_IssuanceFailureKeepsAssignment(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Prepared, false)
	require.NoError(t, testOrder.AssignCarrier("ups"))
	pkg := createPersistedPackage(t, "user-a", "")

	cmd, err := commands.NewGenerateLabelCommand("ORD-1001", *pkg.ID(), "user-a")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	selectionRepo := new(MockSelectionRepository)
	gateway := new(MockLabelGateway)
	prepareUoW := new(MockUoW)

	mock.InOrder(
		prepareUoW.On("Begin", ctx).Return(nil).Once(),
		prepareUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		prepareUoW.On("SelectionRepository").Return(selectionRepo).Once(),
		selectionRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*carrier.Selection{}, nil).Once(),
		prepareUoW.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*packing.Package{pkg}, nil).Once(),
		packageRepo.On("Update", ctx, testOrder.ID(), pkg).Return(nil).Once(),
		prepareUoW.On("Commit", ctx).Return(nil).Once(),
		prepareUoW.On("Rollback", ctx).Return(nil).Once(),
		gateway.On("IssueLabel", ctx, "ORD-1001", "ups", pkg).
			Return(ports.Label{}, errors.New("carrier unavailable")).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(prepareUoW).Once()

	handler := commands.NewGenerateLabelCommandHandler(factory, gateway)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "carrier unavailable")

	// the carrier assignment of the prepare step stays committed and no label
	// is recorded
	assert.Equal(t, "ups", pkg.CarrierCode())
	assert.False(t, pkg.HasLabel())
}

func TestGenerateLabelCommandHandler_Handle_GateBlocksWrongStatus(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Pending, false)
	pkg := createPersistedPackage(t, "user-a", "dhl")

	cmd, err := commands.NewGenerateLabelCommand("ORD-1001", *pkg.ID(), "user-a")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	selectionRepo := new(MockSelectionRepository)
	gateway := new(MockLabelGateway)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("SelectionRepository").Return(selectionRepo).Once(),
		selectionRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*carrier.Selection{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateLabelCommandHandler(factory, gateway)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrOrderNotLabelable)
	gateway.AssertNotCalled(t, "IssueLabel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateLabelCommandHandler_Handle_GateBlocksSplitMode(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Prepared, false)
	pkg := createPersistedPackage(t, "user-a", "dhl")
	selection, err := carrier.NewSelection(0, 2, "dhl")
	require.NoError(t, err)

	cmd, err := commands.NewGenerateLabelCommand("ORD-1001", *pkg.ID(), "user-a")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	selectionRepo := new(MockSelectionRepository)
	gateway := new(MockLabelGateway)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("SelectionRepository").Return(selectionRepo).Once(),
		selectionRepo.On("GetByOrder", ctx, testOrder.ID()).
			Return([]*carrier.Selection{selection}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateLabelCommandHandler(factory, gateway)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrSplitModeActive)
}

func TestGenerateLabelCommandHandler_Handle_NoCarrierAnywhere(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Prepared, false)
	pkg := createPersistedPackage(t, "user-a", "")

	cmd, err := commands.NewGenerateLabelCommand("ORD-1001", *pkg.ID(), "user-a")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	selectionRepo := new(MockSelectionRepository)
	gateway := new(MockLabelGateway)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("SelectionRepository").Return(selectionRepo).Once(),
		selectionRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*carrier.Selection{}, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*packing.Package{pkg}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateLabelCommandHandler(factory, gateway)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrCarrierNotSelected)
}

func TestGenerateLabelCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.GenerateLabelCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewGenerateLabelCommandHandler(factory, new(MockLabelGateway))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrGenerateLabelCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
