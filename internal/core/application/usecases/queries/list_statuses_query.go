package queries

import (
	"errors"

	"repairdesk/internal/pkg/guard"
)

var ErrListStatusesQueryIsNotConstructed = errors.New(
	"ListStatusesQuery must be created via NewListStatusesQuery constructor",
)

// ListStatusesQuery returns every status in display order.
type ListStatusesQuery struct {
	guard guard.ConstructorGuard
}

// NewListStatusesQuery creates the query.
func NewListStatusesQuery() ListStatusesQuery {
	return ListStatusesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListStatusesQuery) Validate() error {
	return q.guard.Validate(ErrListStatusesQueryIsNotConstructed)
}
