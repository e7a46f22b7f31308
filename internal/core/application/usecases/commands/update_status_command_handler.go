package commands

import (
	"context"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/ports"
)

// UpdateStatusCommandHandler redefines an existing status. The id is kept, so logs
// and orders that reference it follow the new name and flags.
type UpdateStatusCommandHandler struct {
	uowFactory StatusUoWFactory
	registry   StatusRegistry
}

// NewUpdateStatusCommandHandler creates a handler for status updates.
func NewUpdateStatusCommandHandler(uowFactory StatusUoWFactory, registry StatusRegistry) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{uowFactory: uowFactory, registry: registry}
}

// Handle loads the status, applies the definition and saves it under the same
// checks as creation.
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd SaveStatusCommand) (*status.Status, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageStatuses); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	statusRepo := uow.StatusRepository()
	s, err := statusRepo.Get(ctx, cmd.StatusID())
	if err != nil {
		return nil, err
	}

	if err = s.Redefine(cmd.Definition()); err != nil {
		return nil, err
	}

	if err = checkAgainstStored(ctx, statusRepo, s); err != nil {
		return nil, err
	}

	if err = statusRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.registry.Invalidate()
	return s, nil
}

// checkAgainstStored validates candidate against every other stored status.
func checkAgainstStored(ctx context.Context, repo ports.StatusRepository, candidate *status.Status) error {
	stored, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	others := make([]*status.Status, 0, len(stored))
	for _, s := range stored {
		if !s.ID().IsEqual(candidate.ID()) {
			others = append(others, s)
		}
	}

	reg, err := status.NewRegistry(others)
	if err != nil {
		return err
	}
	return reg.CheckCandidate(candidate)
}
