package commands

import (
	"errors"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a client.
type CreateClientCommand struct {
	actor    access.Actor
	clientID kernel.UUID
	name     string
	email    string
	phone    string

	guard guard.ConstructorGuard
}

// NewCreateClientCommand validates the actor and client id. Name and email are
// validated by the aggregate.
func NewCreateClientCommand(actor access.Actor, clientID kernel.UUID, name, email, phone string) (CreateClientCommand, error) {
	if err := errors.Join(requireActor(actor), clientID.Validate()); err != nil {
		return CreateClientCommand{}, err
	}

	return CreateClientCommand{
		actor:    actor,
		clientID: clientID,
		name:     name,
		email:    email,
		phone:    phone,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) Actor() access.Actor   { return c.actor }
func (c CreateClientCommand) ClientID() kernel.UUID { return c.clientID }
func (c CreateClientCommand) Name() string          { return c.name }
func (c CreateClientCommand) Email() string         { return c.email }
func (c CreateClientCommand) Phone() string         { return c.phone }
