package commands

import (
	"context"
	"errors"
	"time"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/errs"
)

// EditOrderDetailsResult reports whether an edit log entry was written.
type EditOrderDetailsResult struct {
	Saved bool
	Entry order.EditLogEntry
}

// EditOrderDetailsCommandHandler applies detail edits and writes one edit log entry
// per save. It never changes an order's status or status history.
type EditOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewEditOrderDetailsCommandHandler creates a handler for detail edits.
func NewEditOrderDetailsCommandHandler(uowFactory OrderUoWFactory) EditOrderDetailsCommandHandler {
	return EditOrderDetailsCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order, applies the patch and persists the edit when at least one
// tracked field changed. An edit that changes nothing returns Saved == false and
// writes nothing.
func (h EditOrderDetailsCommandHandler) Handle(ctx context.Context, cmd EditOrderDetailsCommand) (EditOrderDetailsResult, error) {
	if err := cmd.Validate(); err != nil {
		return EditOrderDetailsResult{}, err
	}
	if err := access.Require(cmd.Actor(), access.UpdateOrder); err != nil {
		return EditOrderDetailsResult{}, err
	}
	if cmd.Patch().IsEmpty() {
		return EditOrderDetailsResult{}, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return EditOrderDetailsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	so, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return EditOrderDetailsResult{}, err
	}

	next := cmd.Patch().ApplyTo(so.Details())
	if !next.ClientID.IsEqual(so.Details().ClientID) {
		if _, err = uow.ClientRepository().Get(ctx, next.ClientID); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return EditOrderDetailsResult{}, errs.NewValueIsInvalidErrorWithCause("clientId", err)
			}
			return EditOrderDetailsResult{}, err
		}
	}

	entry, changed, err := so.RecordEdit(next, cmd.Actor().Name(), cmd.Observation(), time.Now())
	if err != nil {
		return EditOrderDetailsResult{}, err
	}
	if !changed {
		return EditOrderDetailsResult{}, nil
	}

	if err = orderRepo.Update(ctx, so); err != nil {
		return EditOrderDetailsResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return EditOrderDetailsResult{}, err
	}

	return EditOrderDetailsResult{Saved: true, Entry: entry}, nil
}
