package commands

import (
	"context"
	"errors"
	"strings"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"
)

// SeedStatusesCommandHandler installs a default workflow when no status exists yet.
type SeedStatusesCommandHandler struct {
	uowFactory StatusUoWFactory
	registry   StatusRegistry
}

// NewSeedStatusesCommandHandler creates a handler for registry seeding.
func NewSeedStatusesCommandHandler(uowFactory StatusUoWFactory, registry StatusRegistry) SeedStatusesCommandHandler {
	return SeedStatusesCommandHandler{uowFactory: uowFactory, registry: registry}
}

// Handle creates every seed in two passes: ids are assigned by name first, then
// allow-lists are resolved against those ids. It returns the number of statuses
// created, which is zero when the registry already has statuses or another
// instance wins the race to seed it.
func (h SeedStatusesCommandHandler) Handle(ctx context.Context, cmd SeedStatusesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	statusRepo := uow.StatusRepository()
	existing, err := statusRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	seeds := cmd.Seeds()
	ids := make(map[string]kernel.UUID, len(seeds))
	for _, seed := range seeds {
		ids[strings.TrimSpace(seed.Name)] = kernel.NewUUID()
	}
	resolve := func(names []string) kernel.UUIDSet {
		refs := make([]kernel.UUID, 0, len(names))
		for _, name := range names {
			refs = append(refs, ids[strings.TrimSpace(name)])
		}
		return kernel.NewUUIDSet(refs...)
	}

	statuses := make([]*status.Status, 0, len(seeds))
	for _, seed := range seeds {
		s, newErr := status.NewStatus(ids[strings.TrimSpace(seed.Name)], status.Definition{
			Name:            seed.Name,
			Order:           seed.Order,
			Color:           seed.Color,
			Icon:            seed.Icon,
			Flags:           seed.Flags,
			AllowedNext:     resolve(seed.Next),
			AllowedPrevious: resolve(seed.Previous),
		})
		if newErr != nil {
			return 0, newErr
		}
		statuses = append(statuses, s)
	}

	reg, err := status.NewRegistry(statuses)
	if err != nil {
		return 0, err
	}
	if _, err = reg.Initial(); err != nil {
		return 0, err
	}

	for _, s := range reg.All() {
		if err = statusRepo.Add(ctx, s); err != nil {
			// Another instance seeded the registry concurrently.
			if errors.Is(err, errs.ErrConflict) {
				return 0, nil
			}
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.registry.Invalidate()
	return len(statuses), nil
}
