package cmd

import (
	"log/slog"

	"repairdesk/internal/adapters/in/http"
	"repairdesk/internal/adapters/out/notifier"
	"repairdesk/internal/adapters/out/postgres"
	"repairdesk/internal/adapters/out/postgres/statusrepo"
	"repairdesk/internal/core/application/registry"
	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *registry.Cache
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot wires the core to its adapters. publisher may be nil.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry.NewCache(statusrepo.NewGormStatusRepository(gormDB)),
		notifier:   notifier.NewClient(cfg.NotifierURL, cfg.NotifierTimeout),
		publisher:  publisher,
		logger:     logger,
	}
}

// Registry is the shared status registry cache.
func (c *CompositionRoot) Registry() *registry.Cache {
	return c.registry
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) statusUoWFactory() commands.StatusUoWFactory {
	return FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) clientUoWFactory() commands.ClientUoWFactory {
	return FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateEditOrderDetailsCommandHandler() commands.EditOrderDetailsCommandHandler {
	return commands.NewEditOrderDetailsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.registry, c.notifier, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateStatusCommandHandler() commands.CreateStatusCommandHandler {
	return commands.NewCreateStatusCommandHandler(c.statusUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.statusUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateDeleteStatusCommandHandler() commands.DeleteStatusCommandHandler {
	return commands.NewDeleteStatusCommandHandler(c.statusUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateSeedStatusesCommandHandler() commands.SeedStatusesCommandHandler {
	return commands.NewSeedStatusesCommandHandler(c.statusUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	return commands.NewCreateClientCommandHandler(c.clientUoWFactory())
}

func (c *CompositionRoot) CreateListStatusesQueryHandler() queries.ListStatusesQueryHandler {
	return queries.NewListStatusesQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateListClientsQueryHandler() queries.ListClientsQueryHandler {
	return queries.NewListClientsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.registry)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.registry)
}

func (c *CompositionRoot) CreateGetTransitionOptionsQueryHandler() queries.GetTransitionOptionsQueryHandler {
	return queries.NewGetTransitionOptionsQueryHandler(c.gormDB, c.registry)
}

// HTTPHandlers collects the use cases served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() http.Handlers {
	return http.Handlers{
		ListStatuses: c.CreateListStatusesQueryHandler(),
		CreateStatus: c.CreateCreateStatusCommandHandler(),
		UpdateStatus: c.CreateUpdateStatusCommandHandler(),
		DeleteStatus: c.CreateDeleteStatusCommandHandler(),
		ListClients:  c.CreateListClientsQueryHandler(),
		CreateClient: c.CreateCreateClientCommandHandler(),
		ListOrders:   c.CreateListOrdersQueryHandler(),
		GetOrder:     c.CreateGetOrderQueryHandler(),
		CreateOrder:  c.CreateCreateOrderCommandHandler(),
		EditOrder:    c.CreateEditOrderDetailsCommandHandler(),
		GetOptions:   c.CreateGetTransitionOptionsQueryHandler(),
		Transition:   c.CreateTransitionOrderCommandHandler(),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}
