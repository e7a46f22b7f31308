package commands

import (
	"context"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/client"
)

// CreateClientCommandHandler persists new clients.
type CreateClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

// NewCreateClientCommandHandler creates a handler for client registration.
func NewCreateClientCommandHandler(uowFactory ClientUoWFactory) CreateClientCommandHandler {
	return CreateClientCommandHandler{uowFactory: uowFactory}
}

// Handle builds the client and stores it.
func (h CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) (*client.Client, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageClients); err != nil {
		return nil, err
	}

	c, err := client.NewClient(cmd.ClientID(), cmd.Name(), cmd.Email(), cmd.Phone())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ClientRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
