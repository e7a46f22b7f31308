package queries

import (
	"context"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/services"
	"repairdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTransitionOptionsQueryHandler reads the order's current status and runs
// the transition resolver against the registry snapshot.
type GetTransitionOptionsQueryHandler struct {
	db       *gorm.DB
	registry StatusRegistry
	resolver services.TransitionResolver
}

// NewGetTransitionOptionsQueryHandler creates a handler for transition options.
func NewGetTransitionOptionsQueryHandler(db *gorm.DB, registry StatusRegistry) GetTransitionOptionsQueryHandler {
	return GetTransitionOptionsQueryHandler{
		db:       db,
		registry: registry,
		resolver: services.NewTransitionResolver(),
	}
}

// Handle returns the candidates, or errs.ObjectNotFoundError for an unknown order.
func (h GetTransitionOptionsQueryHandler) Handle(ctx context.Context, query GetTransitionOptionsQuery) (*TransitionOptions, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row struct {
		StatusID uuid.UUID
	}
	result := h.db.WithContext(ctx).
		Raw(`SELECT status_id FROM service_orders WHERE id = ?`, query.OrderID().Bytes()).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	currentID, err := toKernel(row.StatusID)
	if err != nil {
		return nil, err
	}

	registry, err := h.registry.Current(ctx)
	if err != nil {
		return nil, err
	}

	unrestricted := query.Actor().Can(access.UnrestrictedTransition)
	candidates := h.resolver.Resolve(currentID, registry, unrestricted)

	options := make([]TransitionOption, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, TransitionOption{
			Status:        newStatusRef(registry, c.Status.ID()),
			Icon:          c.Status.Icon(),
			IsBackButton:  c.IsBackButton,
			IsFinal:       c.Status.IsFinal(),
			TriggersEmail: c.Status.TriggersEmail(),
		})
	}

	return &TransitionOptions{
		Current: newStatusRef(registry, currentID),
		Options: options,
	}, nil
}
