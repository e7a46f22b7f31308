package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/generated/servers"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "repairdesk.actor"

// Claims are the custom claims read from Auth0 access tokens. Permissions come
// from Auth0 RBAC and map one to one onto access capabilities.
type Claims struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

// Validate satisfies validator.CustomClaims.
func (c *Claims) Validate(context.Context) error {
	return nil
}

// AuthConfig identifies the Auth0 tenant and API.
type AuthConfig struct {
	Domain   string
	Audience string
}

// NewJWTMiddleware validates RS256 bearer tokens against the tenant's JWKS and
// stores the resulting access.Principal in the echo context.
func NewJWTMiddleware(cfg AuthConfig) (echo.MiddlewareFunc, error) {
	issuerURL, err := url.Parse("https://" + cfg.Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &Claims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	checkJWT := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, _ error) {
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"message":"invalid or missing access token"}`))
		}),
	).CheckJWT

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return echo.WrapMiddleware(checkJWT)(func(ctx echo.Context) error {
			claims, ok := ctx.Request().Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid or missing access token",
				})
			}
			SetActor(ctx, principalFromClaims(claims))
			return next(ctx)
		})
	}, nil
}

// principalFromClaims names the actor by display name, then email, then subject.
func principalFromClaims(claims *validator.ValidatedClaims) access.Principal {
	name := claims.RegisteredClaims.Subject
	var permissions []string

	if custom, ok := claims.CustomClaims.(*Claims); ok && custom != nil {
		permissions = custom.Permissions
		switch {
		case strings.TrimSpace(custom.Name) != "":
			name = custom.Name
		case strings.TrimSpace(custom.Email) != "":
			name = custom.Email
		}
	}

	return access.NewPrincipal(name, permissions)
}

// SetActor stores the authenticated actor for the handlers.
func SetActor(ctx echo.Context, actor access.Actor) {
	ctx.Set(actorContextKey, actor)
}

// ActorFrom returns the actor stored by SetActor, or nil.
func ActorFrom(ctx echo.Context) access.Actor {
	actor, _ := ctx.Get(actorContextKey).(access.Actor)
	return actor
}
