package commands_test

import (
	"testing"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDetailsPatch_ApplyTo(t *testing.T) {
	current := validDetails(kernel.NewUUID())

	next := commands.DetailsPatch{
		CollaboratorPhone: ptr("222"),
		EquipmentModel:    ptr(""),
	}.ApplyTo(current)

	assert.Equal(t, "222", next.Collaborator.Phone)
	assert.Empty(t, next.Equipment.Model)
	assert.Equal(t, current.Collaborator.Name, next.Collaborator.Name)
	assert.Equal(t, current.ClientID, next.ClientID)
	assert.True(t, commands.DetailsPatch{}.IsEmpty())
}

func TestEditOrderDetailsCommandHandler_Handle_RecordsChangedFields(t *testing.T) {
	ctx := t.Context()
	so := openOrder(t, newWorkflow(t))
	editor := access.NewPrincipal("carla", []string{string(access.UpdateOrder)})

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, so.ID()).Return(so, nil).Once(),
		orders.On("Update", ctx, so).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewEditOrderDetailsCommand(editor, so.ID(),
		commands.DetailsPatch{CollaboratorPhone: ptr("222"), CollaboratorName: ptr("Paula")}, "client called")
	require.NoError(t, err)

	result, err := commands.NewEditOrderDetailsCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.Equal(t, "carla", result.Entry.Responsible())
	assert.Equal(t, "client called", result.Entry.Observation())
	assert.Equal(t, []order.FieldChange{{Field: order.FieldCollaboratorPhone, OldValue: "111", NewValue: "222"}}, result.Entry.Changes())
	assert.Len(t, so.Logs(), 1)
	assert.Len(t, so.EditLogs(), 1)
	uow.AssertExpectations(t)
	orders.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestEditOrderDetailsCommandHandler_Handle_NoChanges(t *testing.T) {
	ctx := t.Context()
	so := openOrder(t, newWorkflow(t))
	editor := access.NewPrincipal("carla", []string{string(access.UpdateOrder)})

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	orders.On("Get", ctx, so.ID()).Return(so, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewEditOrderDetailsCommand(editor, so.ID(),
		commands.DetailsPatch{CollaboratorPhone: ptr(" 111 ")}, "")
	require.NoError(t, err)

	result, err := commands.NewEditOrderDetailsCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.Empty(t, so.EditLogs())
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestEditOrderDetailsCommandHandler_Handle_UnknownClient(t *testing.T) {
	ctx := t.Context()
	so := openOrder(t, newWorkflow(t))
	editor := access.NewPrincipal("carla", []string{string(access.UpdateOrder)})
	otherClient := kernel.NewUUID()

	orders := new(MockOrderRepository)
	clients := new(MockClientRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	orders.On("Get", ctx, so.ID()).Return(so, nil).Once()
	uow.On("ClientRepository").Return(clients).Once()
	clients.On("Get", ctx, otherClient).Return(nil, errs.NewObjectNotFoundError("client", otherClient.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewEditOrderDetailsCommand(editor, so.ID(), commands.DetailsPatch{ClientID: &otherClient}, "")
	require.NoError(t, err)

	_, err = commands.NewEditOrderDetailsCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, so.EditLogs())
	uow.AssertExpectations(t)
	clients.AssertExpectations(t)
}

func TestEditOrderDetailsCommandHandler_Handle_Forbidden(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	cmd, err := commands.NewEditOrderDetailsCommand(access.NewPrincipal("guest", nil), kernel.NewUUID(),
		commands.DetailsPatch{ReportedProblem: ptr("x")}, "")
	require.NoError(t, err)

	_, err = commands.NewEditOrderDetailsCommandHandler(factory).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, access.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}
