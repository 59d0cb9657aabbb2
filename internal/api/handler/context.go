package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/api/middleware"
	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// principal returns the principal injected by the Auth middleware.
func principal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

// identity is principal narrowed to a persisted account. The admin has no
// owned records, so it is forbidden here.
func identity(c echo.Context) (*domain.Identity, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	return domain.AsIdentity(p)
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

type messageResponse struct {
	Message string `json:"message"`
}
