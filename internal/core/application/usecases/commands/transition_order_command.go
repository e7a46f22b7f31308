package commands

import (
	"errors"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionChanges carries the optional parts of a transition. Nil fields leave
// the order's current values unchanged.
type TransitionChanges struct {
	TechnicalSolution   *string
	Attachments         []order.Attachment
	ConfirmedServiceIDs *kernel.UUIDSet
}

// TransitionOrderCommand asks to move an order to a status, or to save a new
// technical solution or service confirmations without moving it.
//
// Example:
//
//	solution := "replaced the keyboard"
//	cmd, err := NewTransitionOrderCommand(actor, orderID, readyID, "tested ok",
//	    TransitionChanges{TechnicalSolution: &solution})
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	actor       access.Actor
	orderID     kernel.UUID
	statusID    kernel.UUID
	observation string
	changes     TransitionChanges

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand validates the actor and both identifiers.
func NewTransitionOrderCommand(
	actor access.Actor,
	orderID, statusID kernel.UUID,
	observation string,
	changes TransitionChanges,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		actor:       actor,
		observation: observation,
		changes:     changes,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireActor(actor),
		orderID.Validate(),
		statusID.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.statusID = statusID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Actor() access.Actor        { return c.actor }
func (c TransitionOrderCommand) OrderID() kernel.UUID       { return c.orderID }
func (c TransitionOrderCommand) StatusID() kernel.UUID      { return c.statusID }
func (c TransitionOrderCommand) Observation() string        { return c.observation }
func (c TransitionOrderCommand) Changes() TransitionChanges { return c.changes }
