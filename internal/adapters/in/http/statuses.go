package http

import (
	"net/http"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListStatuses handles GET /api/v1/statuses.
func (s *Server) ListStatuses(ctx echo.Context) error {
	views, err := s.handlers.ListStatuses.Handle(ctx.Request().Context(), queries.NewListStatusesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Status, 0, len(views))
	for _, v := range views {
		response = append(response, toAPIStatus(v))
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateStatus handles POST /api/v1/statuses.
func (s *Server) CreateStatus(ctx echo.Context) error {
	return s.saveStatus(ctx, kernel.NewUUID(), s.handlers.CreateStatus, http.StatusCreated)
}

// UpdateStatus handles PUT /api/v1/statuses/{statusId}.
func (s *Server) UpdateStatus(ctx echo.Context, statusId servers.StatusId) error {
	id, err := toKernel(statusId)
	if err != nil {
		return badRequest(ctx, "Invalid status id")
	}
	return s.saveStatus(ctx, id, s.handlers.UpdateStatus, http.StatusOK)
}

func (s *Server) saveStatus(ctx echo.Context, id kernel.UUID, handler SaveStatusHandler, code int) error {
	var body servers.StatusInput
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	definition, err := toDefinition(body)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	cmd, err := commands.NewSaveStatusCommand(ActorFrom(ctx), id, definition)
	if err != nil {
		return s.fail(ctx, err)
	}

	saved, err := handler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(code, toAPIStatus(queries.StatusView{
		ID:              saved.ID(),
		Name:            saved.Name(),
		Order:           saved.Order(),
		Color:           saved.Color(),
		Icon:            saved.Icon(),
		IsInitial:       saved.IsInitial(),
		IsFinal:         saved.IsFinal(),
		IsPickup:        saved.IsPickup(),
		TriggersEmail:   saved.TriggersEmail(),
		AllowedNext:     saved.AllowedNext().Slice(),
		AllowedPrevious: saved.AllowedPrevious().Slice(),
	}))
}

// DeleteStatus handles DELETE /api/v1/statuses/{statusId}.
func (s *Server) DeleteStatus(ctx echo.Context, statusId servers.StatusId) error {
	id, err := toKernel(statusId)
	if err != nil {
		return badRequest(ctx, "Invalid status id")
	}

	cmd, err := commands.NewDeleteStatusCommand(ActorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toDefinition(body servers.StatusInput) (status.Definition, error) {
	next, err := toKernelSet(body.AllowedNext)
	if err != nil {
		return status.Definition{}, err
	}
	previous, err := toKernelSet(body.AllowedPrevious)
	if err != nil {
		return status.Definition{}, err
	}

	flag := func(b *bool) bool { return b != nil && *b }

	definition := status.Definition{
		Name:  body.Name,
		Color: body.Color,
		Icon:  deref(body.Icon),
		Flags: status.Flags{
			Initial:       flag(body.IsInitial),
			Final:         flag(body.IsFinal),
			Pickup:        flag(body.IsPickupStatus),
			TriggersEmail: flag(body.TriggersEmail),
		},
		AllowedNext:     next,
		AllowedPrevious: previous,
	}
	if body.Order != nil {
		definition.Order = *body.Order
	}

	return definition, nil
}
