package handler

import (
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/api/middleware"
	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

func newTestContext(method, target, body string, p domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		middleware.SetPrincipal(c, p)
	}
	return c, rec
}

func identityPrincipal(id string, role domain.Role) domain.Principal {
	return domain.IdentityPrincipal{Identity: &domain.Identity{ID: id, Role: role, Email: id + "@example.com"}}
}
