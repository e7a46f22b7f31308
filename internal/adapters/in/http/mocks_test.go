package http

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockHandler stands in for any query or command handler returning (R, error).
type mockHandler[Q any, R any] struct{ mock.Mock }

func (m *mockHandler[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	args := m.Called(ctx, q)
	var result R
	if v := args.Get(0); v != nil {
		result = v.(R)
	}
	return result, args.Error(1)
}

type mockDeleteStatusHandler struct{ mock.Mock }

func (m *mockDeleteStatusHandler) Handle(ctx context.Context, cmd commands.DeleteStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockAttachmentStore struct{ mock.Mock }

func (m *mockAttachmentStore) Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (order.Attachment, error) {
	args := m.Called(ctx, name, contentType, body, size)
	return args.Get(0).(order.Attachment), args.Error(1)
}

func (m *mockAttachmentStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type fakeHandlers struct {
	listStatuses *mockHandler[queries.ListStatusesQuery, []queries.StatusView]
	createStatus *mockHandler[commands.SaveStatusCommand, *status.Status]
	updateStatus *mockHandler[commands.SaveStatusCommand, *status.Status]
	deleteStatus *mockDeleteStatusHandler
	listClients  *mockHandler[queries.ListClientsQuery, []queries.ClientView]
	createClient *mockHandler[commands.CreateClientCommand, *client.Client]
	listOrders   *mockHandler[queries.ListOrdersQuery, []queries.OrderSummary]
	getOrder     *mockHandler[queries.GetOrderQuery, *queries.OrderDetail]
	createOrder  *mockHandler[commands.CreateOrderCommand, commands.CreateOrderResult]
	editOrder    *mockHandler[commands.EditOrderDetailsCommand, commands.EditOrderDetailsResult]
	getOptions   *mockHandler[queries.GetTransitionOptionsQuery, *queries.TransitionOptions]
	transition   *mockHandler[commands.TransitionOrderCommand, commands.TransitionOrderResult]
}

func newFakeHandlers() fakeHandlers {
	return fakeHandlers{
		listStatuses: &mockHandler[queries.ListStatusesQuery, []queries.StatusView]{},
		createStatus: &mockHandler[commands.SaveStatusCommand, *status.Status]{},
		updateStatus: &mockHandler[commands.SaveStatusCommand, *status.Status]{},
		deleteStatus: &mockDeleteStatusHandler{},
		listClients:  &mockHandler[queries.ListClientsQuery, []queries.ClientView]{},
		createClient: &mockHandler[commands.CreateClientCommand, *client.Client]{},
		listOrders:   &mockHandler[queries.ListOrdersQuery, []queries.OrderSummary]{},
		getOrder:     &mockHandler[queries.GetOrderQuery, *queries.OrderDetail]{},
		createOrder:  &mockHandler[commands.CreateOrderCommand, commands.CreateOrderResult]{},
		editOrder:    &mockHandler[commands.EditOrderDetailsCommand, commands.EditOrderDetailsResult]{},
		getOptions:   &mockHandler[queries.GetTransitionOptionsQuery, *queries.TransitionOptions]{},
		transition:   &mockHandler[commands.TransitionOrderCommand, commands.TransitionOrderResult]{},
	}
}

func (f fakeHandlers) handlers() Handlers {
	return Handlers{
		ListStatuses: f.listStatuses,
		CreateStatus: f.createStatus,
		UpdateStatus: f.updateStatus,
		DeleteStatus: f.deleteStatus,
		ListClients:  f.listClients,
		CreateClient: f.createClient,
		ListOrders:   f.listOrders,
		GetOrder:     f.getOrder,
		CreateOrder:  f.createOrder,
		EditOrder:    f.editOrder,
		GetOptions:   f.getOptions,
		Transition:   f.transition,
	}
}

// stubAuth authenticates every request as actor; a nil actor leaves the request
// anonymous.
func stubAuth(actor access.Actor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if actor != nil {
				SetActor(ctx, actor)
			}
			return next(ctx)
		}
	}
}

func newTestRouter(t *testing.T, f fakeHandlers, store *mockAttachmentStore, actor access.Actor) *echo.Echo {
	t.Helper()

	var server *Server
	if store != nil {
		server = NewServer(f.handlers(), store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	} else {
		server = NewServer(f.handlers(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	e, err := NewRouter(server, RouterConfig{Auth: stubAuth(actor)})
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var clerk = access.NewPrincipal("maria", []string{
	string(access.CreateOrder),
	string(access.UpdateOrder),
	string(access.ManageStatuses),
	string(access.ManageClients),
})

func mustStatus(t *testing.T, name string, flags status.Flags) *status.Status {
	t.Helper()
	s, err := status.NewStatus(kernel.NewUUID(), status.Definition{Name: name, Color: "blue", Flags: flags})
	require.NoError(t, err)
	return s
}

func mustLogEntry(t *testing.T, from, to kernel.UUID) order.LogEntry {
	t.Helper()
	entry, err := order.RestoreLogEntry(2, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "maria", from, to, "tested ok")
	require.NoError(t, err)
	return entry
}

func jsonResponse(t *testing.T, rec *httptest.ResponseRecorder, code int) string {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	return rec.Body.String()
}
