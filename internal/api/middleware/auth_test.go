package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

type stubAuthenticator struct {
	principal domain.Principal
	err       error
	gotToken  string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (domain.Principal, error) {
	s.gotToken = token
	return s.principal, s.err
}

func runAuth(t *testing.T, auth Authenticator, header string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Auth(auth)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	ident := &domain.Identity{ID: "u1", Role: domain.RoleClient}
	auth := &stubAuthenticator{principal: domain.IdentityPrincipal{Identity: ident}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(auth)(func(c echo.Context) error {
		p, ok := Principal(c)
		if !ok || p.SubjectID() != "u1" {
			t.Fatalf("principal not set: %v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if auth.gotToken != "abc.def.ghi" {
		t.Fatalf("unexpected token passed: %q", auth.gotToken)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	called, err := runAuth(t, &stubAuthenticator{}, "")
	if called {
		t.Fatal("should not reach next")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer   "} {
		called, err := runAuth(t, &stubAuthenticator{}, header)
		if called {
			t.Fatalf("%q: should not reach next", header)
		}
		if !errors.Is(err, domain.ErrInvalidCredential) {
			t.Fatalf("%q: expected ErrInvalidCredential, got %v", header, err)
		}
	}
}

func TestAuthMiddleware_AuthenticatorError(t *testing.T) {
	called, err := runAuth(t, &stubAuthenticator{err: domain.ErrIdentityNotFound}, "Bearer tok")
	if called {
		t.Fatal("should not reach next")
	}
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}
