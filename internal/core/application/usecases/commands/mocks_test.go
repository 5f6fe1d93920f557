package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInCarrierTransit(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*packing.Package, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*packing.Package), args.Error(1)
}

func (m *MockPackageRepository) ReplaceForOrder(
	ctx context.Context,
	orderID kernel.UUID,
	packages []*packing.Package,
) ([]*packing.Package, error) {
	args := m.Called(ctx, orderID, packages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*packing.Package), args.Error(1)
}

func (m *MockPackageRepository) Update(ctx context.Context, orderID kernel.UUID, p *packing.Package) error {
	args := m.Called(ctx, orderID, p)
	return args.Error(0)
}

type MockSelectionRepository struct{ mock.Mock }

func (m *MockSelectionRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*carrier.Selection, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*carrier.Selection), args.Error(1)
}

func (m *MockSelectionRepository) ReplaceForOrder(
	ctx context.Context,
	orderID kernel.UUID,
	selections []*carrier.Selection,
) error {
	args := m.Called(ctx, orderID, selections)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface in this package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

func (m *MockUoW) SelectionRepository() ports.SelectionRepository {
	args := m.Called()
	return args.Get(0).(ports.SelectionRepository)
}

type MockPackagesUoWFactory struct{ mock.Mock }

func (m *MockPackagesUoWFactory) Create() commands.PackagesUoW {
	args := m.Called()
	return args.Get(0).(commands.PackagesUoW)
}

type MockSelectionsUoWFactory struct{ mock.Mock }

func (m *MockSelectionsUoWFactory) Create() commands.SelectionsUoW {
	args := m.Called()
	return args.Get(0).(commands.SelectionsUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockLabelGateway struct{ mock.Mock }

func (m *MockLabelGateway) IssueLabel(
	ctx context.Context,
	orderNumber, carrierCode string,
	pkg *packing.Package,
) (ports.Label, error) {
	args := m.Called(ctx, orderNumber, carrierCode, pkg)
	return args.Get(0).(ports.Label), args.Error(1)
}

func (m *MockLabelGateway) TrackShipment(
	ctx context.Context,
	orderNumber, carrierCode string,
) (order.Status, error) {
	args := m.Called(ctx, orderNumber, carrierCode)
	return args.Get(0).(order.Status), args.Error(1)
}
