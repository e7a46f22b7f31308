package commands

import (
	"context"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/status"
)

// CreateStatusCommandHandler adds a status to the registry.
type CreateStatusCommandHandler struct {
	uowFactory StatusUoWFactory
	registry   StatusRegistry
}

// NewCreateStatusCommandHandler creates a handler for status creation.
func NewCreateStatusCommandHandler(uowFactory StatusUoWFactory, registry StatusRegistry) CreateStatusCommandHandler {
	return CreateStatusCommandHandler{uowFactory: uowFactory, registry: registry}
}

// Handle validates the definition against the stored statuses (single initial
// status, existing allow-list references), persists it and drops the cached registry.
func (h CreateStatusCommandHandler) Handle(ctx context.Context, cmd SaveStatusCommand) (*status.Status, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageStatuses); err != nil {
		return nil, err
	}

	candidate, err := status.NewStatus(cmd.StatusID(), cmd.Definition())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	statusRepo := uow.StatusRepository()
	if err = checkAgainstStored(ctx, statusRepo, candidate); err != nil {
		return nil, err
	}

	if err = statusRepo.Add(ctx, candidate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.registry.Invalidate()
	return candidate, nil
}
