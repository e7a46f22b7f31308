package commands_test

import (
	"errors"
	"testing"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, actor access.Actor, clientID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(actor, kernel.NewUUID(), validDetails(clientID), "ana",
		[]commands.ServiceLine{{ID: kernel.NewUUID(), Name: "Formatting"}}, "")
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	actor := access.NewPrincipal("maria", []string{string(access.CreateOrder)})
	acme, err := client.NewClient(kernel.NewUUID(), "Acme", "", "")
	require.NoError(t, err)
	cmd := newCreateOrderCommand(t, actor, acme.ID())
	number, err := order.NewOrderNumber(42)
	require.NoError(t, err)

	reg := new(MockStatusRegistry)
	reg.On("Current", ctx).Return(w.registry, nil).Once()

	orders := new(MockOrderRepository)
	clients := new(MockClientRepository)
	sequence := new(MockOrderNumberSequence)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clients).Once(),
		clients.On("Get", ctx, acme.ID()).Return(acme, nil).Once(),
		uow.On("OrderNumberSequence").Return(sequence).Once(),
		sequence.On("Next", ctx).Return(number, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.AnythingOfType("*order.ServiceOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, reg)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	so := result.Order
	assert.Same(t, w.a, result.Status)
	assert.Equal(t, "OS-042", so.Number().String())
	assert.Equal(t, w.a.ID(), so.StatusID())
	assert.Equal(t, "ana", so.Analyst())
	require.Len(t, so.Logs(), 1)
	assert.Equal(t, w.a.ID(), so.LastLog().FromStatus())
	assert.Equal(t, w.a.ID(), so.LastLog().ToStatus())
	assert.Equal(t, "maria", so.LastLog().Responsible())
	orders.AssertExpectations(t)
	clients.AssertExpectations(t)
	sequence.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, access.NewPrincipal("guest", nil), kernel.NewUUID())
	factory := new(MockOrderUoWFactory)
	reg := new(MockStatusRegistry)

	h := commands.NewCreateOrderCommandHandler(factory, reg)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, access.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_NoInitialStatus(t *testing.T) {
	ctx := t.Context()
	repair, err := status.NewStatus(kernel.NewUUID(), status.Definition{Name: "Repair", Color: "red"})
	require.NoError(t, err)
	registry, err := status.NewRegistry([]*status.Status{repair})
	require.NoError(t, err)

	reg := new(MockStatusRegistry)
	reg.On("Current", ctx).Return(registry, nil).Once()
	factory := new(MockOrderUoWFactory)

	cmd := newCreateOrderCommand(t, access.NewPrincipal("maria", []string{string(access.CreateOrder)}), kernel.NewUUID())
	h := commands.NewCreateOrderCommandHandler(factory, reg)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, status.ErrNoInitialStatus)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnknownClient(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	clientID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, access.NewPrincipal("maria", []string{string(access.CreateOrder)}), clientID)

	reg := new(MockStatusRegistry)
	reg.On("Current", ctx).Return(w.registry, nil).Once()

	clients := new(MockClientRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clients).Once(),
		clients.On("Get", ctx, clientID).Return(nil, errs.NewObjectNotFoundError("client", clientID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, reg)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "clientId")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	actor := access.NewPrincipal("maria", []string{string(access.CreateOrder)})
	acme, err := client.NewClient(kernel.NewUUID(), "Acme", "", "")
	require.NoError(t, err)
	cmd := newCreateOrderCommand(t, actor, acme.ID())
	number, err := order.NewOrderNumber(1)
	require.NoError(t, err)

	reg := new(MockStatusRegistry)
	reg.On("Current", ctx).Return(w.registry, nil).Once()

	orders := new(MockOrderRepository)
	clients := new(MockClientRepository)
	sequence := new(MockOrderNumberSequence)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clients).Once(),
		clients.On("Get", ctx, acme.ID()).Return(acme, nil).Once(),
		uow.On("OrderNumberSequence").Return(sequence).Once(),
		sequence.On("Next", ctx).Return(number, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.Anything).Return(errs.NewConflictError("order number", errors.New("duplicate key"))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, reg)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), new(MockStatusRegistry))
	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
