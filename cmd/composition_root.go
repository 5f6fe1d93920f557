package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	labelGateway ports.LabelGateway
	logger       *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, labelGateway ports.LabelGateway, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		labelGateway: labelGateway,
		logger:       logger,
	}
}

func (c *CompositionRoot) CreateSavePackagesCommandHandler() commands.SavePackagesCommandHandler {
	var f commands.PackagesUoWFactory = FuncPackagesUoWFactory(func() commands.PackagesUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSavePackagesCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignPackageCarrierCommandHandler() commands.AssignPackageCarrierCommandHandler {
	var f commands.PackagesUoWFactory = FuncPackagesUoWFactory(func() commands.PackagesUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPackageCarrierCommandHandler(f)
}

func (c *CompositionRoot) CreateSelectOrderCarrierCommandHandler() commands.SelectOrderCarrierCommandHandler {
	var f commands.PackagesUoWFactory = FuncPackagesUoWFactory(func() commands.PackagesUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSelectOrderCarrierCommandHandler(f)
}

func (c *CompositionRoot) CreateGenerateLabelCommandHandler() commands.GenerateLabelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateLabelCommandHandler(f, c.labelGateway)
}

func (c *CompositionRoot) CreateGenerateLabelsCommandHandler() commands.GenerateLabelsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateLabelsCommandHandler(f, c.labelGateway)
}

func (c *CompositionRoot) CreateSetLineCarriersCommandHandler() commands.SetLineCarriersCommandHandler {
	var f commands.SelectionsUoWFactory = FuncSelectionsUoWFactory(func() commands.SelectionsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetLineCarriersCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDispatchPlanCommandHandler() commands.CreateDispatchPlanCommandHandler {
	var f commands.SelectionsUoWFactory = FuncSelectionsUoWFactory(func() commands.SelectionsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDispatchPlanCommandHandler(f)
}

func (c *CompositionRoot) CreateRefreshTrackingCommandHandler() commands.RefreshTrackingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshTrackingCommandHandler(f, c.labelGateway,
		c.logger.With("component", "refresh_tracking"))
}

func (c *CompositionRoot) CreateGetPackagesQueryHandler() queries.GetPackagesQueryHandler {
	return queries.NewGetPackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLineCarriersQueryHandler() queries.GetLineCarriersQueryHandler {
	return queries.NewGetLineCarriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePreviewPackagesQueryHandler() queries.PreviewPackagesQueryHandler {
	var f queries.StoreUoWFactory = FuncStoreUoWFactory(func() queries.StoreUoW {
		return c.uowFactory.Create()
	})
	return queries.NewPreviewPackagesQueryHandler(f)
}

type FuncPackagesUoWFactory func() commands.PackagesUoW

func (f FuncPackagesUoWFactory) Create() commands.PackagesUoW {
	return f()
}

type FuncSelectionsUoWFactory func() commands.SelectionsUoW

func (f FuncSelectionsUoWFactory) Create() commands.SelectionsUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncStoreUoWFactory func() queries.StoreUoW

func (f FuncStoreUoWFactory) Create() queries.StoreUoW {
	return f()
}
