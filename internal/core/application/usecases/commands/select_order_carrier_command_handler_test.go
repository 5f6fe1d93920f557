package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectOrderCarrierCommandHandler_Handle_ScopeAll(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Pending, false)
	ownPkg := createPersistedPackage(t, "user-a", "")
	otherPkg := createPersistedPackage(t, "user-b", "dhl")

	cmd, err := commands.NewSelectOrderCarrierCommand("ORD-1001", "ups", "user-a", commands.SelectScopeAll)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetByOrder", ctx, testOrder.ID()).
			Return([]*packing.Package{ownPkg, otherPkg}, nil).Once(),
		packageRepo.On("Update", ctx, testOrder.ID(), ownPkg).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackagesUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSelectOrderCarrierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ups", testOrder.CarrierCode())
	assert.Equal(t, "ups", ownPkg.CarrierCode())
	// locked by another user, left alone
	assert.Equal(t, "dhl", otherPkg.CarrierCode())
	packageRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSelectOrderCarrierCommandHandler_Handle_MissingOnlySkipsAssigned(t *testing.T) {
	ctx := t.Context()
	testOrder := createHandlerOrder(t, order.Pending, false)
	bare := createPersistedPackage(t, "user-a", "")
	assigned := createPersistedPackage(t, "user-a", "dhl")

	cmd, err := commands.NewSelectOrderCarrierCommand(
		"ORD-1001", "ups", "user-a", commands.SelectScopeMissingOnly)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumber", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetByOrder", ctx, testOrder.ID()).
			Return([]*packing.Package{bare, assigned}, nil).Once(),
		packageRepo.On("Update", ctx, testOrder.ID(), bare).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackagesUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSelectOrderCarrierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ups", bare.CarrierCode())
	assert.Equal(t, "dhl", assigned.CarrierCode())
	// missing-only never touches the order-level carrier
	assert.Empty(t, testOrder.CarrierCode())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSelectOrderCarrierCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockPackagesUoWFactory)
	handler := commands.NewSelectOrderCarrierCommandHandler(factory)

	err := handler.Handle(t.Context(), commands.SelectOrderCarrierCommand{})

	require.ErrorIs(t, err, commands.ErrSelectOrderCarrierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestSelectScopeFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    commands.SelectScope
		wantErr bool
	}{
		{"all", commands.SelectScopeAll, false},
		{"missing-only", commands.SelectScopeMissingOnly, false},
		{"everything", commands.SelectScopeUnknown, true},
		{"", commands.SelectScopeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := commands.SelectScopeFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
