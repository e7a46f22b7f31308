package http

import (
	"errors"
	"net/http"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/domain/services"
	"repairdesk/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	pickupOnly := params.Pickup != nil && *params.Pickup

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), queries.NewListOrdersQuery(pickupOnly))
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.OrderSummary, 0, len(orders))
	for _, o := range orders {
		response = append(response, toAPIOrderSummary(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := toKernel(body.ClientId)
	if err != nil {
		return badRequest(ctx, "Invalid client id")
	}

	details := order.Details{
		ClientID: clientID,
		Equipment: order.Equipment{
			Type:         body.Equipment.Type,
			Brand:        deref(body.Equipment.Brand),
			Model:        deref(body.Equipment.Model),
			SerialNumber: deref(body.Equipment.SerialNumber),
		},
		ReportedProblem: body.ReportedProblem,
	}
	if c := body.Collaborator; c != nil {
		details.Collaborator = order.Collaborator{
			Name:  deref(c.Name),
			Email: deref(c.Email),
			Phone: deref(c.Phone),
		}
	}

	var lines []commands.ServiceLine
	if body.Services != nil {
		for _, line := range *body.Services {
			id := kernel.NewUUID()
			if line.Id != nil {
				if id, err = toKernel(*line.Id); err != nil {
					return badRequest(ctx, "Invalid service id")
				}
			}
			lines = append(lines, commands.ServiceLine{ID: id, Name: line.Name})
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		ActorFrom(ctx),
		kernel.NewUUID(),
		details,
		deref(body.Analyst),
		lines,
		deref(body.Observation),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{
		Id:     result.Order.ID().Bytes(),
		Number: result.Order.Number().String(),
		Status: servers.StatusRef{
			Id:    result.Status.ID().Bytes(),
			Name:  result.Status.Name(),
			Color: optional(result.Status.Color()),
		},
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernel(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	detail, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAPIOrderDetail(detail))
}

// EditOrder handles PATCH /api/v1/orders/{orderId}. An edit that changes
// nothing answers 200 with saved=false.
func (s *Server) EditOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernel(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.DetailsPatch
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patch := commands.DetailsPatch{ReportedProblem: body.ReportedProblem}
	if body.ClientId != nil {
		clientID, convErr := toKernel(*body.ClientId)
		if convErr != nil {
			return badRequest(ctx, "Invalid client id")
		}
		patch.ClientID = &clientID
	}
	if c := body.Collaborator; c != nil {
		patch.CollaboratorName = c.Name
		patch.CollaboratorEmail = c.Email
		patch.CollaboratorPhone = c.Phone
	}
	if e := body.Equipment; e != nil {
		patch.EquipmentType = e.Type
		patch.EquipmentBrand = e.Brand
		patch.EquipmentModel = e.Model
		patch.EquipmentSerial = e.SerialNumber
	}

	cmd, err := commands.NewEditOrderDetailsCommand(ActorFrom(ctx), id, patch, deref(body.Observation))
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.EditOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.EditResult{Saved: result.Saved}
	if result.Saved {
		response.Entry = &servers.EditLogEntry{
			Seq:         result.Entry.Seq(),
			At:          result.Entry.At(),
			Responsible: result.Entry.Responsible(),
			Observation: optional(result.Entry.Observation()),
			Changes:     toAPIFieldChanges(result.Entry.Changes()),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetTransitionOptions handles GET /api/v1/orders/{orderId}/transitions.
func (s *Server) GetTransitionOptions(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernel(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetTransitionOptionsQuery(ActorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	options, err := s.handlers.GetOptions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.TransitionOptions{
		Current: toAPIStatusRef(options.Current),
		Options: make([]servers.TransitionOption, 0, len(options.Options)),
	}
	for _, o := range options.Options {
		response.Options = append(response.Options, servers.TransitionOption{
			Status:        toAPIStatusRef(o.Status),
			Icon:          optional(o.Icon),
			IsBackButton:  o.IsBackButton,
			IsFinal:       o.IsFinal,
			TriggersEmail: o.TriggersEmail,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
//
// A request that changes nothing answers 200 with saved=false. A failed client
// notification answers 200 with a warning; the transition stays committed.
func (s *Server) TransitionOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernel(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.TransitionRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	statusID, err := toKernel(body.StatusId)
	if err != nil {
		return badRequest(ctx, "Invalid status id")
	}

	changes := commands.TransitionChanges{TechnicalSolution: body.TechnicalSolution}
	if body.ConfirmedServiceIds != nil {
		confirmed, convErr := toKernelSet(body.ConfirmedServiceIds)
		if convErr != nil {
			return badRequest(ctx, "Invalid service id")
		}
		changes.ConfirmedServiceIDs = &confirmed
	}
	if body.Attachments != nil {
		// An empty list clears the attachments; only a missing field keeps them.
		changes.Attachments = make([]order.Attachment, 0, len(*body.Attachments))
		for _, a := range *body.Attachments {
			attachment, convErr := order.NewAttachment(a.Name, a.Url)
			if convErr != nil {
				return s.fail(ctx, convErr)
			}
			changes.Attachments = append(changes.Attachments, attachment)
		}
	}

	cmd, err := commands.NewTransitionOrderCommand(ActorFrom(ctx), id, statusID, deref(body.Observation), changes)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.Transition.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, services.ErrNothingToSave) {
		message := "Nothing to save"
		return ctx.JSON(http.StatusOK, servers.TransitionResult{Saved: false, Message: &message})
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, s.toTransitionResult(result))
}

func (s *Server) toTransitionResult(result commands.TransitionOrderResult) servers.TransitionResult {
	statusChanged := result.StatusChanged
	entry := servers.LogEntry{
		Seq:         result.Entry.Seq(),
		At:          result.Entry.At(),
		Responsible: result.Entry.Responsible(),
		From:        statusRefOf(result.Entry.FromStatus(), result.From),
		To:          statusRefOf(result.Entry.ToStatus(), result.To),
		Observation: optional(result.Entry.Observation()),
	}

	response := servers.TransitionResult{
		Saved:         true,
		StatusChanged: &statusChanged,
		Entry:         &entry,
	}

	if n := result.Notification; n.Attempted {
		response.Notification = &servers.Notification{Sent: n.Sent, Error: optional(n.Error)}
		if !n.Sent {
			warning := "Saved, but the client was not notified: " + n.Error
			response.Warning = &warning
		}
	}

	return response
}

func statusRefOf(id kernel.UUID, s *status.Status) servers.StatusRef {
	if s == nil {
		return servers.StatusRef{Id: id.Bytes(), Name: status.UnknownStatusName}
	}
	return servers.StatusRef{Id: id.Bytes(), Name: s.Name(), Color: optional(s.Color())}
}
