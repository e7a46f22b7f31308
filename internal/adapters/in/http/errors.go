package http

import (
	"errors"
	"net/http"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/domain/services"
	"repairdesk/internal/core/ports"
	"repairdesk/internal/generated/servers"
	"repairdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusCode maps use case errors to HTTP status codes. Validation wins over
// lookups: an unknown reference inside a request body is the caller's mistake,
// while an unknown path id is a 404. A registry without exactly one initial
// status is a 409 so the administrator sees what to fix.
func statusCode(err error) int {
	switch {
	case errors.Is(err, commands.ErrActorIsRequired),
		errors.Is(err, queries.ErrActorIsRequired),
		errors.Is(err, services.ErrActorIsRequired):
		return http.StatusUnauthorized
	case errors.Is(err, access.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrTransitionNotAllowed),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrServicesNotConfirmed),
		errors.Is(err, ports.ErrConcurrentModification),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, status.ErrNoInitialStatus),
		errors.Is(err, status.ErrMultipleInitialStatuses):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Internal errors are logged and answered
// with a generic message.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
