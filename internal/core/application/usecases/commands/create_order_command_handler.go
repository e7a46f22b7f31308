package commands

import (
	"context"
	"errors"
	"time"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"
)

// CreateOrderResult identifies the order that was opened.
type CreateOrderResult struct {
	Order  *order.ServiceOrder
	Status *status.Status
}

// CreateOrderCommandHandler opens service orders in the registry's initial status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, registryCache)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(result.Order.Number())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   StatusRegistry
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, registry StatusRegistry) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle checks the actor's capability, resolves the initial status, verifies the
// client exists and draws the next order number, then persists the order with its
// first log entry in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}
	if err := access.Require(cmd.Actor(), access.CreateOrder); err != nil {
		return CreateOrderResult{}, err
	}

	reg, err := h.registry.Current(ctx)
	if err != nil {
		return CreateOrderResult{}, err
	}
	initial, err := reg.Initial()
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.ClientRepository().Get(ctx, cmd.Details().ClientID); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateOrderResult{}, errs.NewValueIsInvalidErrorWithCause("clientId", err)
		}
		return CreateOrderResult{}, err
	}

	number, err := uow.OrderNumberSequence().Next(ctx)
	if err != nil {
		return CreateOrderResult{}, err
	}

	so, err := order.NewServiceOrder(cmd.OrderID(), number, initial, order.Intake{
		Details:     cmd.Details(),
		Analyst:     cmd.Analyst(),
		Services:    cmd.Services(),
		Responsible: cmd.Actor().Name(),
		Observation: cmd.Observation(),
		At:          time.Now(),
	})
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, so); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{Order: so, Status: initial}, nil
}
