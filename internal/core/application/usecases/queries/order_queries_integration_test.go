package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "repairdesk/internal/adapters/out/postgres"
	"repairdesk/internal/adapters/out/postgres/clientrepo"
	"repairdesk/internal/adapters/out/postgres/orderrepo"
	"repairdesk/internal/adapters/out/postgres/statusrepo"
	"repairdesk/internal/core/application/registry"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderQueriesTestSuite runs the order read models against PostgreSQL with a
// lifecycle of Received -> Repair -> Ready (pickup, email) -> Delivered (final).
type OrderQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	cache     *registry.Cache

	statusRepo *statusrepo.GormStatusRepository
	orderRepo  *orderrepo.GormOrderRepository

	received, repair, ready, delivered *status.Status
	acme                               *client.Client
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.statusRepo = statusrepo.NewGormStatusRepository(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
	suite.cache = registry.NewCache(suite.statusRepo)
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE statuses, clients, service_orders, order_services, order_logs, order_edit_logs, order_counters",
	).Error)

	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	suite.received = suite.addStatus(ids[0], status.Definition{
		Name: "Received", Order: 0, Color: "blue", Flags: status.Flags{Initial: true},
		AllowedNext: kernel.NewUUIDSet(ids[1]),
	})
	suite.repair = suite.addStatus(ids[1], status.Definition{
		Name: "Repair", Order: 1, Color: "orange",
		AllowedNext:     kernel.NewUUIDSet(ids[2]),
		AllowedPrevious: kernel.NewUUIDSet(ids[0]),
	})
	suite.ready = suite.addStatus(ids[2], status.Definition{
		Name: "Ready", Order: 2, Color: "green", Flags: status.Flags{Pickup: true, TriggersEmail: true},
		AllowedNext: kernel.NewUUIDSet(ids[3]),
	})
	suite.delivered = suite.addStatus(ids[3], status.Definition{
		Name: "Delivered", Order: 3, Color: "gray", Flags: status.Flags{Final: true},
	})
	suite.cache.Invalidate()

	acme, err := client.NewClient(kernel.NewUUID(), "Acme", "it@acme.example", "")
	suite.Require().NoError(err)
	suite.Require().NoError(clientrepo.NewGormClientRepository(suite.db).Add(ctx, acme))
	suite.acme = acme
}

func (suite *OrderQueriesTestSuite) TestListOrders_NewestFirstWithClientAndStatusNames() {
	first := suite.addOrder(1)
	second := suite.addOrder(2, suite.repair, suite.ready)

	orders, err := queries.NewListOrdersQueryHandler(suite.db, suite.cache).
		Handle(context.Background(), queries.NewListOrdersQuery(false))

	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal(second.ID(), orders[0].ID)
	suite.Equal("OS-002", orders[0].Number)
	suite.Equal("Ready", orders[0].Status.Name)
	suite.Equal("green", orders[0].Status.Color)
	suite.Equal(first.ID(), orders[1].ID)
	suite.Equal("Received", orders[1].Status.Name)
	suite.Equal("Acme", orders[1].ClientName)
	suite.Equal("Notebook", orders[1].EquipmentType)
}

func (suite *OrderQueriesTestSuite) TestListOrders_PickupFilterUsesFlag() {
	suite.addOrder(1)
	waiting := suite.addOrder(2, suite.repair, suite.ready)

	orders, err := queries.NewListOrdersQueryHandler(suite.db, suite.cache).
		Handle(context.Background(), queries.NewListOrdersQuery(true))

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(waiting.ID(), orders[0].ID)
}

func (suite *OrderQueriesTestSuite) TestListOrders_EmptyDatabase_ReturnsEmptySlice() {
	orders, err := queries.NewListOrdersQueryHandler(suite.db, suite.cache).
		Handle(context.Background(), queries.NewListOrdersQuery(false))

	suite.Require().NoError(err)
	suite.NotNil(orders)
	suite.Empty(orders)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_ReturnsDetailWithHistories() {
	ctx := context.Background()
	so := suite.addOrder(1, suite.repair)

	details := so.Details()
	details.Equipment.SerialNumber = "SN-2"
	_, changed, err := so.RecordEdit(details, "joao", "serial fixed", time.Now())
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().NoError(suite.orderRepo.Update(ctx, so))

	query, err := queries.NewGetOrderQuery(so.ID())
	suite.Require().NoError(err)
	detail, err := queries.NewGetOrderQueryHandler(suite.db, suite.cache).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("OS-001", detail.Number)
	suite.Equal("Acme", detail.ClientName)
	suite.Equal("it@acme.example", detail.ClientEmail)
	suite.Equal("Ana", detail.Collaborator.Name)
	suite.Equal("SN-2", detail.Equipment.SerialNumber)
	suite.Equal("Screen broken", detail.ReportedProblem)
	suite.Equal("Repair", detail.Status.Name)
	suite.Equal(int64(3), detail.Version)
	suite.Empty(detail.Attachments)

	suite.Require().Len(detail.Services, 1)
	suite.Equal("Screen", detail.Services[0].Name)
	suite.False(detail.Services[0].Confirmed)

	suite.Require().Len(detail.Logs, 2)
	suite.Equal("Received", detail.Logs[0].To.Name)
	suite.Equal("Received", detail.Logs[1].From.Name)
	suite.Equal("Repair", detail.Logs[1].To.Name)

	suite.Require().Len(detail.EditLogs, 1)
	suite.Equal("joao", detail.EditLogs[0].Responsible)
	suite.Equal([]order.FieldChange{{
		Field:    order.FieldEquipmentSerial,
		OldValue: "SN1",
		NewValue: "SN-2",
	}}, detail.EditLogs[0].Changes)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_DeletedStatusRendersAsUnknown() {
	ctx := context.Background()
	so := suite.addOrder(1, suite.repair)

	suite.Require().NoError(suite.statusRepo.Delete(ctx, suite.repair.ID()))
	suite.cache.Invalidate()

	query, err := queries.NewGetOrderQuery(so.ID())
	suite.Require().NoError(err)
	detail, err := queries.NewGetOrderQueryHandler(suite.db, suite.cache).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(status.UnknownStatusName, detail.Status.Name)
	suite.Equal(status.UnknownStatusName, detail.Logs[1].To.Name)
	suite.Equal("Received", detail.Logs[1].From.Name)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	detail, err := queries.NewGetOrderQueryHandler(suite.db, suite.cache).Handle(context.Background(), query)

	suite.Nil(detail)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesTestSuite) TestTransitionOptions() {
	ctx := context.Background()
	inRepair := suite.addOrder(1, suite.repair)
	done := suite.addOrder(2, suite.repair, suite.ready, suite.delivered)
	handler := queries.NewGetTransitionOptionsQueryHandler(suite.db, suite.cache)

	suite.Run("restricted actor gets back button first", func() {
		query, err := queries.NewGetTransitionOptionsQuery(access.NewPrincipal("tech", nil), inRepair.ID())
		suite.Require().NoError(err)

		options, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)

		suite.Equal("Repair", options.Current.Name)
		suite.Require().Len(options.Options, 2)
		suite.Equal("Received", options.Options[0].Status.Name)
		suite.True(options.Options[0].IsBackButton)
		suite.Equal("Ready", options.Options[1].Status.Name)
		suite.False(options.Options[1].IsBackButton)
		suite.True(options.Options[1].TriggersEmail)
	})

	suite.Run("unrestricted actor gets every other status", func() {
		admin := access.NewPrincipal("admin", []string{string(access.UnrestrictedTransition)})
		query, err := queries.NewGetTransitionOptionsQuery(admin, inRepair.ID())
		suite.Require().NoError(err)

		options, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)

		suite.Len(options.Options, 3)
	})

	suite.Run("final status offers nothing", func() {
		admin := access.NewPrincipal("admin", []string{string(access.UnrestrictedTransition)})
		query, err := queries.NewGetTransitionOptionsQuery(admin, done.ID())
		suite.Require().NoError(err)

		options, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)

		suite.Equal("Delivered", options.Current.Name)
		suite.Empty(options.Options)
	})

	suite.Run("unknown order", func() {
		query, err := queries.NewGetTransitionOptionsQuery(access.NewPrincipal("tech", nil), kernel.NewUUID())
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *OrderQueriesTestSuite) TestListClients_OrderedByName() {
	ctx := context.Background()
	globex, err := client.NewClient(kernel.NewUUID(), "Globex", "", "555")
	suite.Require().NoError(err)
	suite.Require().NoError(clientrepo.NewGormClientRepository(suite.db).Add(ctx, globex))

	clients, err := queries.NewListClientsQueryHandler(suite.db).Handle(ctx, queries.NewListClientsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(clients, 2)
	suite.Equal("Acme", clients[0].Name)
	suite.Equal("Globex", clients[1].Name)
	suite.Equal("555", clients[1].Phone)
}

func (suite *OrderQueriesTestSuite) addStatus(id kernel.UUID, def status.Definition) *status.Status {
	s, err := status.NewStatus(id, def)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.statusRepo.Add(context.Background(), s))
	return s
}

// addOrder creates an order and walks it through path, one persisted
// transition per step.
func (suite *OrderQueriesTestSuite) addOrder(seq int64, path ...*status.Status) *order.ServiceOrder {
	ctx := context.Background()
	number, err := order.NewOrderNumber(seq)
	suite.Require().NoError(err)
	screen, err := order.NewContractedService(kernel.NewUUID(), "Screen")
	suite.Require().NoError(err)

	so, err := order.NewServiceOrder(kernel.NewUUID(), number, suite.received, order.Intake{
		Details: order.Details{
			ClientID:        suite.acme.ID(),
			Collaborator:    order.Collaborator{Name: "Ana", Email: "ana@acme.example"},
			Equipment:       order.Equipment{Type: "Notebook", Brand: "Dell", SerialNumber: "SN1"},
			ReportedProblem: "Screen broken",
		},
		Analyst:     "maria",
		Services:    []order.ContractedService{screen},
		Responsible: "maria",
		At:          time.Now(),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, so))

	for _, next := range path {
		_, err = so.ApplyTransition(order.Transition{To: next.ID(), Responsible: "tech", At: time.Now()})
		suite.Require().NoError(err)
		suite.Require().NoError(suite.orderRepo.Update(ctx, so))
	}
	return so
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}
