package http

import (
	"context"
	"log/slog"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/ports"
	"repairdesk/internal/generated/servers"
)

// Use case handlers the server delegates to.
type (
	ListStatusesHandler interface {
		Handle(ctx context.Context, query queries.ListStatusesQuery) ([]queries.StatusView, error)
	}

	SaveStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SaveStatusCommand) (*status.Status, error)
	}

	DeleteStatusHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteStatusCommand) error
	}

	ListClientsHandler interface {
		Handle(ctx context.Context, query queries.ListClientsQuery) ([]queries.ClientView, error)
	}

	CreateClientHandler interface {
		Handle(ctx context.Context, cmd commands.CreateClientCommand) (*client.Client, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderDetail, error)
	}

	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}

	EditOrderHandler interface {
		Handle(ctx context.Context, cmd commands.EditOrderDetailsCommand) (commands.EditOrderDetailsResult, error)
	}

	TransitionOptionsHandler interface {
		Handle(ctx context.Context, query queries.GetTransitionOptionsQuery) (*queries.TransitionOptions, error)
	}

	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (commands.TransitionOrderResult, error)
	}
)

// Handlers groups every use case the API exposes.
type Handlers struct {
	ListStatuses ListStatusesHandler
	CreateStatus SaveStatusHandler
	UpdateStatus SaveStatusHandler
	DeleteStatus DeleteStatusHandler
	ListClients  ListClientsHandler
	CreateClient CreateClientHandler
	ListOrders   ListOrdersHandler
	GetOrder     GetOrderHandler
	CreateOrder  CreateOrderHandler
	EditOrder    EditOrderHandler
	GetOptions   TransitionOptionsHandler
	Transition   TransitionOrderHandler
}

// Server implements servers.ServerInterface.
// It translates HTTP requests into commands and queries and maps their
// results and errors back to the API models.
type Server struct {
	handlers    Handlers
	attachments ports.AttachmentStore
	logger      *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates the API server. attachments may be nil when no object
// storage is configured; uploads then answer 503.
func NewServer(handlers Handlers, attachments ports.AttachmentStore, logger *slog.Logger) *Server {
	return &Server{
		handlers:    handlers,
		attachments: attachments,
		logger:      logger.With("component", "http_server"),
	}
}
