package commands

import (
	"context"

	"repairdesk/internal/core/domain/model/access"
)

// DeleteStatusCommandHandler deletes a status and removes it from the allow-lists of
// every other status. Orders and logs that reference it are left as they are and
// render it as an unknown status.
type DeleteStatusCommandHandler struct {
	uowFactory StatusUoWFactory
	registry   StatusRegistry
}

// NewDeleteStatusCommandHandler creates a handler for status deletion.
func NewDeleteStatusCommandHandler(uowFactory StatusUoWFactory, registry StatusRegistry) DeleteStatusCommandHandler {
	return DeleteStatusCommandHandler{uowFactory: uowFactory, registry: registry}
}

// Handle removes the status in one transaction and drops the cached registry.
// Returns errs.ObjectNotFoundError when the status does not exist.
func (h DeleteStatusCommandHandler) Handle(ctx context.Context, cmd DeleteStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := access.Require(cmd.Actor(), access.ManageStatuses); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	statusRepo := uow.StatusRepository()
	if _, err := statusRepo.Get(ctx, cmd.StatusID()); err != nil {
		return err
	}

	all, err := statusRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, s := range all {
		if s.ID().IsEqual(cmd.StatusID()) || !s.ForgetStatus(cmd.StatusID()) {
			continue
		}
		if err = statusRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	if err = statusRepo.Delete(ctx, cmd.StatusID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.registry.Invalidate()
	return nil
}
