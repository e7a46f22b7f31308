package http

import (
	"net/http"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListClients handles GET /api/v1/clients.
func (s *Server) ListClients(ctx echo.Context) error {
	clients, err := s.handlers.ListClients.Handle(ctx.Request().Context(), queries.NewListClientsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Client, 0, len(clients))
	for _, c := range clients {
		response = append(response, toAPIClient(c))
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(ctx echo.Context) error {
	var body servers.NewClient
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateClientCommand(ActorFrom(ctx), kernel.NewUUID(), body.Name, deref(body.Email), deref(body.Phone))
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.CreateClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toAPIClient(queries.ClientView{
		ID:    c.ID(),
		Name:  c.Name(),
		Email: c.Email(),
		Phone: c.Phone(),
	}))
}
