package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

const principalKey = "principal"

// Authenticator resolves a bearer token to the principal it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// Auth validates the bearer token and injects the principal into context.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrInvalidCredential
			}

			p, err := auth.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}
			c.Set(principalKey, p)

			return next(c)
		}
	}
}

// Principal returns the principal set by Auth.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok && p != nil
}

// SetPrincipal stores p as the request principal.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}
