package commands

import (
	"errors"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/guard"
)

var ErrDeleteStatusCommandIsNotConstructed = errors.New(
	"DeleteStatusCommand must be created via NewDeleteStatusCommand constructor",
)

// DeleteStatusCommand removes a status from the registry.
type DeleteStatusCommand struct {
	actor    access.Actor
	statusID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteStatusCommand validates the actor and status id.
func NewDeleteStatusCommand(actor access.Actor, statusID kernel.UUID) (DeleteStatusCommand, error) {
	if err := errors.Join(requireActor(actor), statusID.Validate()); err != nil {
		return DeleteStatusCommand{}, err
	}

	return DeleteStatusCommand{
		actor:    actor,
		statusID: statusID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteStatusCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStatusCommandIsNotConstructed)
}

func (c DeleteStatusCommand) Actor() access.Actor   { return c.actor }
func (c DeleteStatusCommand) StatusID() kernel.UUID { return c.statusID }
