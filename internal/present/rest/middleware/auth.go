package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/openmuseum/collections/internal/domain"
	"github.com/openmuseum/collections/internal/present/rest/presenter"
	"github.com/openmuseum/collections/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// IdentifyIdentity resolves the requester from a Bearer header or the
// session cookie. A missing or invalid token leaves the request anonymous;
// rejection is left to RequireIdentity on the routes that need it.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		token := ""

		authHeader := c.Request().Header.Get("authorization")
		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			authType, headerToken := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skipCheckAuthorization
			}
			token = headerToken
		} else {
			cookie, err := c.Cookie("token")
			if err != nil || cookie.Value == "" {
				goto skipCheckAuthorization
			}
			token = cookie.Value
		}

		{
			session, err := s.auth.ValidateToken(ctx, token)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: s.auth.ValidateToken failed"))
				goto skipCheckAuthorization
			}

			ctx = context.WithValue(ctx, domain.RequesterIDCtxKey, session.UserID)
			ctx = context.WithValue(ctx, domain.RequesterEmailCtxKey, session.Email)
			ctx = context.WithValue(ctx, domain.SessionTokenCtxKey, session.TokenID)
			span.SetAttributes(attribute.Int64("RequesterID", session.UserID))
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireIdentity rejects requests that IdentifyIdentity left anonymous.
func (s *AuthMiddleware) RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if _, ok := ctx.Value(domain.RequesterIDCtxKey).(int64); !ok {
			return presenter.Unauthorized(c, "", "Unauthorized", "you need to login")
		}
		return next(c)
	}
}
