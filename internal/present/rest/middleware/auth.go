package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/repae-esatic/gateway/internal/domain"
)

var tracer = otel.Tracer("auth")

// IdentifyRequester lifts the bearer token and portal header into the
// request context. It never rejects: the gateway forwards the token
// opaquely and the upstream services are the enforcement point.
func IdentifyRequester(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyRequester")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 || split[0] != "Bearer" {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipAuthorization
			}

			ctx = context.WithValue(ctx, domain.RequesterTokenCtxKey, split[1])
			span.SetAttributes(attribute.Bool("HasToken", true))
		}

	skipAuthorization:
		if portal := c.Request().Header.Get("x-repae-portal"); portal != "" {
			ctx = context.WithValue(ctx, domain.RequesterPortalCtxKey, portal)
			span.SetAttributes(attribute.String("Portal", portal))
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// TokenFromContext returns the caller's bearer token, or "".
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(domain.RequesterTokenCtxKey).(string); ok {
		return token
	}
	return ""
}
