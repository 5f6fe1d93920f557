package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/packagerepo"
	"fulfillment/internal/adapters/out/postgres/selectionrepo"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.LineDTO{},
		&packagerepo.PackageDTO{}, &packagerepo.ContentDTO{},
		&selectionrepo.SelectionDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_lines, packages, package_contents, carrier_selections").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	// Create multiple unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	// Verify instances are different
	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	// Verify both instances provide access to repositories
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.PackageRepository(), "First instance should provide package repository")
	suite.NotNil(uow1.SelectionRepository(), "First instance should provide selection repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Test multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	// Test commit
	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	// Test rollback on new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test commit without begin
	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	// Test rollback without begin
	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_CommittedChangesPersist verifies changes written inside the
// transaction survive the commit across all three repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommittedChangesPersist() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-1001")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	persisted, err := uow.PackageRepository().ReplaceForOrder(ctx, testOrder.ID(),
		[]*packing.Package{suite.createDraft("user-a", 0, 3)})
	suite.Require().NoError(err)
	suite.Require().Len(persisted, 1)

	selection, err := carrier.NewSelection(0, 6, "dhl")
	suite.Require().NoError(err)
	suite.Require().NoError(
		uow.SelectionRepository().ReplaceForOrder(ctx, testOrder.ID(), []*carrier.Selection{selection}))

	suite.Require().NoError(uow.Commit(ctx))

	// Fresh unit of work sees all the committed state
	verify := suite.factory.Create()
	loadedOrder, err := verify.OrderRepository().GetByNumber(ctx, "ORD-1001")
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), loadedOrder.ID())

	loadedPackages, err := verify.PackageRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(loadedPackages, 1)

	loadedSelections, err := verify.SelectionRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(loadedSelections, 1)
}

// TestUnitOfWork_RollbackDiscardsChanges verifies nothing written inside the
// transaction survives a rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-1001")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	_, err := uow.PackageRepository().ReplaceForOrder(ctx, testOrder.ID(),
		[]*packing.Package{suite.createDraft("user-a", 0, 3)})
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, packageCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&packagerepo.PackageDTO{}).Count(&packageCount).Error)
	suite.Zero(orderCount)
	suite.Zero(packageCount)
}

// TestUnitOfWork_WithoutTransaction verifies repositories work against the main
// connection when no transaction is active.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-1001")

	uow := suite.factory.Create()

	// No Begin: operations execute immediately
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	loaded, err := uow.OrderRepository().GetByNumber(ctx, "ORD-1001")
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), loaded.ID())
}

// TestUnitOfWork_PackagingWorkflow runs the save-packages flow end to end: load
// the order, merge a draft into the current set, persist the result.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PackagingWorkflow() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-1001")

	setup := suite.factory.Create()
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate, err := uow.OrderRepository().GetByNumber(ctx, "ORD-1001")
	suite.Require().NoError(err)

	current, err := uow.PackageRepository().GetByOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)

	store, err := packing.NewStore(aggregate, current)
	suite.Require().NoError(err)

	err = store.MergeDraft([]*packing.Package{suite.createDraft("user-a", 0, 3)}, "user-a")
	suite.Require().NoError(err)

	persisted, err := uow.PackageRepository().ReplaceForOrder(ctx, aggregate.ID(), store.Packages())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Len(persisted, 1)
	suite.NotNil(persisted[0].ID())

	loaded, err := suite.factory.Create().PackageRepository().GetByOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded, 1)
	suite.Equal(3, loaded[0].QuantityOf(0))
}

// Helpers

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(number string) *order.Order {
	lineA, err := order.NewLine(0, "SKU-A", "Widget A", 10)
	suite.Require().NoError(err)
	lineB, err := order.NewLine(1, "SKU-B", "Bundle B", 2)
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(kernel.NewUUID(), number,
		[]order.Line{lineA, lineB}, nil, order.Pending, "", false)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) createDraft(
	creatorID string, lineIndex, quantity int,
) *packing.Package {
	dims, err := kernel.NewDimensions(40, 30, 20, kernel.UnitCentimeters)
	suite.Require().NoError(err)
	content, err := packing.NewContent(lineIndex, "SKU-A", quantity, "")
	suite.Require().NoError(err)

	persisted, err := packing.RestorePackage(kernel.NewUUID(), creatorID, "medium",
		dims, 1.2, "", []packing.Content{content})
	suite.Require().NoError(err)

	draft, err := persisted.CloneAsNew(creatorID)
	suite.Require().NoError(err)
	return draft
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
