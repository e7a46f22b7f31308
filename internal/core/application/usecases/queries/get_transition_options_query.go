package queries

import (
	"errors"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/guard"
)

var (
	ErrGetTransitionOptionsQueryIsNotConstructed = errors.New(
		"GetTransitionOptionsQuery must be created via NewGetTransitionOptionsQuery constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// GetTransitionOptionsQuery computes the statuses the actor may move an order to.
type GetTransitionOptionsQuery struct {
	actor   access.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTransitionOptionsQuery creates the query for actor and orderID.
func NewGetTransitionOptionsQuery(actor access.Actor, orderID kernel.UUID) (GetTransitionOptionsQuery, error) {
	if actor == nil {
		return GetTransitionOptionsQuery{}, ErrActorIsRequired
	}
	if err := orderID.Validate(); err != nil {
		return GetTransitionOptionsQuery{}, err
	}
	return GetTransitionOptionsQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTransitionOptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetTransitionOptionsQueryIsNotConstructed)
}

func (q GetTransitionOptionsQuery) Actor() access.Actor  { return q.actor }
func (q GetTransitionOptionsQuery) OrderID() kernel.UUID { return q.orderID }

// TransitionOptions lists the candidates in the order the UI shows them: back
// buttons first, then forward moves by display order.
type TransitionOptions struct {
	Current StatusRef
	Options []TransitionOption
}

// TransitionOption is one candidate status.
type TransitionOption struct {
	Status        StatusRef
	Icon          string
	IsBackButton  bool
	IsFinal       bool
	TriggersEmail bool
}
