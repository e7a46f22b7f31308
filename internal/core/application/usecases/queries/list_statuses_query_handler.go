package queries

import (
	"context"
)

// ListStatusesQueryHandler serves the status list from the registry snapshot.
type ListStatusesQueryHandler struct {
	registry StatusRegistry
}

// NewListStatusesQueryHandler creates a handler reading from registry.
func NewListStatusesQueryHandler(registry StatusRegistry) ListStatusesQueryHandler {
	return ListStatusesQueryHandler{registry: registry}
}

// Handle returns the statuses sorted by display order, then name.
func (h ListStatusesQueryHandler) Handle(ctx context.Context, query ListStatusesQuery) ([]StatusView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	registry, err := h.registry.Current(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]StatusView, 0, registry.Len())
	for _, s := range registry.All() {
		views = append(views, newStatusView(s))
	}
	return views, nil
}
