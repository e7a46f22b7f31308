package commands

import (
	"errors"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/guard"
)

var ErrSaveStatusCommandIsNotConstructed = errors.New(
	"SaveStatusCommand must be created via NewSaveStatusCommand constructor",
)

// SaveStatusCommand creates or redefines a status. The definition is validated by
// status.NewStatus; references to other statuses are checked against storage by
// the handlers.
//
// Example:
//
//	cmd, err := NewSaveStatusCommand(admin, kernel.NewUUID(), status.Definition{
//	    Name:  "Awaiting parts",
//	    Order: 3,
//	    Color: "#ffb300",
//	})
//	err = createHandler.Handle(ctx, cmd)
type SaveStatusCommand struct {
	actor      access.Actor
	statusID   kernel.UUID
	definition status.Definition

	guard guard.ConstructorGuard
}

// NewSaveStatusCommand validates the actor and status id.
func NewSaveStatusCommand(actor access.Actor, statusID kernel.UUID, definition status.Definition) (SaveStatusCommand, error) {
	if err := errors.Join(requireActor(actor), statusID.Validate()); err != nil {
		return SaveStatusCommand{}, err
	}

	return SaveStatusCommand{
		actor:      actor,
		statusID:   statusID,
		definition: definition,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveStatusCommand) Validate() error {
	return c.guard.Validate(ErrSaveStatusCommandIsNotConstructed)
}

func (c SaveStatusCommand) Actor() access.Actor           { return c.actor }
func (c SaveStatusCommand) StatusID() kernel.UUID         { return c.statusID }
func (c SaveStatusCommand) Definition() status.Definition { return c.definition }
