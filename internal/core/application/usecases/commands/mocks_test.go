package commands_test

import (
	"context"
	"testing"
	"time"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.ServiceOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.ServiceOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ServiceOrder), args.Error(1)
}

type MockOrderNumberSequence struct{ mock.Mock }

func (m *MockOrderNumberSequence) Next(ctx context.Context) (order.OrderNumber, error) {
	args := m.Called(ctx)
	return args.Get(0).(order.OrderNumber), args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) GetAll(ctx context.Context) ([]*client.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*client.Client), args.Error(1)
}

type MockStatusRepository struct{ mock.Mock }

func (m *MockStatusRepository) Add(ctx context.Context, s *status.Status) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStatusRepository) Update(ctx context.Context, s *status.Status) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStatusRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStatusRepository) Get(ctx context.Context, id kernel.UUID) (*status.Status, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusRepository) GetAll(ctx context.Context) ([]*status.Status, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*status.Status), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
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

func (m *MockUoW) OrderNumberSequence() ports.OrderNumberSequence {
	args := m.Called()
	return args.Get(0).(ports.OrderNumberSequence)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

func (m *MockUoW) StatusRepository() ports.StatusRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.StatusUoW {
	args := m.Called()
	return args.Get(0).(commands.StatusUoW)
}

type MockClientUoWFactory struct{ mock.Mock }

func (m *MockClientUoWFactory) Create() commands.ClientUoW {
	args := m.Called()
	return args.Get(0).(commands.ClientUoW)
}

type MockStatusRegistry struct{ mock.Mock }

func (m *MockStatusRegistry) Current(ctx context.Context) (*status.Registry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Registry), args.Error(1)
}

func (m *MockStatusRegistry) Invalidate() {
	m.Called()
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, orderID kernel.UUID, statusName string) ports.NotificationResult {
	args := m.Called(ctx, orderID, statusName)
	return args.Get(0).(ports.NotificationResult)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// workflow is the A -> B fixture: A is initial, B notifies the client.
type workflow struct {
	a, b     *status.Status
	registry *status.Registry
}

func newWorkflow(t *testing.T) workflow {
	t.Helper()
	aID, bID := kernel.NewUUID(), kernel.NewUUID()

	a, err := status.NewStatus(aID, status.Definition{
		Name: "Received", Order: 0, Color: "grey",
		Flags:       status.Flags{Initial: true},
		AllowedNext: kernel.NewUUIDSet(bID),
	})
	require.NoError(t, err)
	b, err := status.NewStatus(bID, status.Definition{
		Name: "Ready", Order: 1, Color: "green",
		Flags:           status.Flags{Pickup: true, TriggersEmail: true},
		AllowedPrevious: kernel.NewUUIDSet(aID),
	})
	require.NoError(t, err)

	reg, err := status.NewRegistry([]*status.Status{a, b})
	require.NoError(t, err)
	return workflow{a: a, b: b, registry: reg}
}

func validDetails(clientID kernel.UUID) order.Details {
	return order.Details{
		ClientID:        clientID,
		Collaborator:    order.Collaborator{Name: "Paula", Email: "paula@acme.test", Phone: "111"},
		Equipment:       order.Equipment{Type: "Notebook", Brand: "Dell", Model: "Latitude 5420"},
		ReportedProblem: "does not boot",
	}
}

// openOrder returns an order in the workflow's initial status with the given
// contracted services, as if loaded from storage.
func openOrder(t *testing.T, w workflow, services ...order.ContractedService) *order.ServiceOrder {
	t.Helper()
	number, err := order.NewOrderNumber(7)
	require.NoError(t, err)

	so, err := order.NewServiceOrder(kernel.NewUUID(), number, w.a, order.Intake{
		Details:     validDetails(kernel.NewUUID()),
		Analyst:     "ana",
		Services:    services,
		Responsible: "ana",
		At:          time.Now(),
	})
	require.NoError(t, err)
	so.MarkPersisted(1)
	return so
}
