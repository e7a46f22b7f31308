package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"repairdesk/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const apiPrefix = "/api/"

// RouterConfig carries the cross-cutting parts of the HTTP stack.
type RouterConfig struct {
	// Auth authenticates API requests and stores the actor with SetActor.
	Auth echo.MiddlewareFunc

	// LogLevel is the echo logger level, as accepted by gommon/log.
	LogLevel log.Lvl

	// Health reports readiness for GET /health; nil means always healthy.
	Health func() error
}

// NewRouter wires the API server into a new echo instance:
//
//	GET /health       readiness probe
//	GET /metrics      Prometheus metrics
//	GET /swagger/*    Swagger UI for the OpenAPI document
//	/api/v1/...       the authenticated, validated API
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth middleware is required")
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerDocs(doc); err != nil {
		return nil, err
	}

	validate, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)

	e.Use(middleware.Recover())
	e.Use(RequestMetrics)
	e.Use(apiOnly(cfg.Auth), apiOnly(validate))

	e.GET("/health", func(ctx echo.Context) error {
		if cfg.Health != nil {
			if err := cfg.Health(); err != nil {
				return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

// apiOnly applies mw to /api/ requests only.
func apiOnly(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := mw(next)
		return func(ctx echo.Context) error {
			if strings.HasPrefix(ctx.Request().URL.Path, apiPrefix) {
				return guarded(ctx)
			}
			return next(ctx)
		}
	}
}

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// registerDocs publishes the OpenAPI document to swag for the Swagger UI.
func registerDocs(doc *openapi3.T) error {
	var err error
	registerOnce.Do(func() {
		var raw []byte
		raw, err = doc.MarshalJSON()
		if err != nil {
			err = fmt.Errorf("failed to render the openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, openAPIDoc{json: string(raw)})
	})
	return err
}
