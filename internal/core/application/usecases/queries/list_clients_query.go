package queries

import (
	"errors"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/guard"
)

var ErrListClientsQueryIsNotConstructed = errors.New(
	"ListClientsQuery must be created via NewListClientsQuery constructor",
)

// ListClientsQuery returns every client ordered by name.
type ListClientsQuery struct {
	guard guard.ConstructorGuard
}

// NewListClientsQuery creates the query.
func NewListClientsQuery() ListClientsQuery {
	return ListClientsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListClientsQuery) Validate() error {
	return q.guard.Validate(ErrListClientsQueryIsNotConstructed)
}

// ClientView is the read model of a client.
type ClientView struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
}
