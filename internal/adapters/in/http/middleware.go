package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"repairdesk/internal/generated/servers"
	"repairdesk/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// RequestValidator checks requests against the OpenAPI document before they
// reach the handlers. Paths the document does not describe pass through.
// Multipart bodies are left to the handlers.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build the openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
				return next(ctx)
			}
			if err != nil {
				return badRequest(ctx, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
					ExcludeRequestBody: strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm),
				},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(ctx)
		}
	}, nil
}

// validationMessage keeps the first line of a kin-openapi error, which names the
// offending field without dumping the schema.
func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		msg := reqErr.Error()
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		return msg
	}
	return err.Error()
}

// RequestMetrics counts handled requests by method, route template and status.
func RequestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		err := next(ctx)

		code := ctx.Response().Status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
		}

		route := ctx.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(ctx.Request().Method, route, strconv.Itoa(code)).Inc()

		return err
	}
}
