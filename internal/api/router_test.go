package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nyaaysathi/legal-api/internal/api/handler"
	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// stubAuth resolves every token to principal; other AuthService methods are
// not exercised here.
type stubAuth struct {
	ports.AuthService
	principal domain.Principal
}

func (s stubAuth) Authenticate(context.Context, string) (domain.Principal, error) {
	if s.principal == nil {
		return nil, domain.ErrInvalidCredential
	}
	return s.principal, nil
}

type stubChat struct{ ports.ChatService }

func (stubChat) SendGuest(_ context.Context, sessionID, _, _ string) (*ports.ChatReply, error) {
	return &ports.ChatReply{Response: "ok", SessionID: "guest_1"}, nil
}

type stubApplications struct{ ports.ApplicationService }

func (stubApplications) List(context.Context, domain.Principal, ports.ApplicationFilter) (*ports.ApplicationList, error) {
	return &ports.ApplicationList{}, nil
}

func newTestRouter(p domain.Principal, guestRPS float64) http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(
		Services{Auth: stubAuth{principal: p}, Chat: stubChat{}, Applications: stubApplications{}},
		handler.NewHealthHandler(nil),
		Options{GuestChatRPS: guestRPS, Registerer: reg, Gatherer: reg},
		zerolog.Nop(),
	)
}

func serve(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestRouter(nil, 0), http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_AdminRoutesNeedToken(t *testing.T) {
	rec := serve(newTestRouter(nil, 0), http.MethodGet, "/api/admin/lawyer-applications", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"detail"`) {
		t.Fatalf("expected detail envelope, got %s", rec.Body.String())
	}
}

func TestRouter_AdminRoutesRejectOtherRoles(t *testing.T) {
	client := domain.IdentityPrincipal{Identity: &domain.Identity{ID: "c1", Role: domain.RoleClient}}

	rec := serve(newTestRouter(client, 0), http.MethodGet, "/api/admin/lawyer-applications", "tok", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_AdminRoutesAllowAdmin(t *testing.T) {
	rec := serve(newTestRouter(domain.AdminPrincipal{Email: "admin@example.com"}, 0),
		http.MethodGet, "/api/admin/lawyer-applications", "tok", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := serve(newTestRouter(nil, 0), http.MethodGet, "/api/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(nil, 0)
	serve(h, http.MethodGet, "/api/health", "", "")

	rec := serve(h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "legal_api_requests_total") {
		t.Fatalf("expected request metrics, got %s", rec.Body.String())
	}
}

func TestRouter_GuestChatIsRateLimited(t *testing.T) {
	h := newTestRouter(nil, 0.1)
	body := `{"message":"hello"}`

	if rec := serve(h, http.MethodPost, "/api/chat/guest", "", body); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := serve(h, http.MethodPost, "/api/chat/guest", "", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
}

func TestRouter_FirmDecisionRoutesNeedManager(t *testing.T) {
	client := domain.IdentityPrincipal{Identity: &domain.Identity{ID: "c1", Role: domain.RoleClient}}
	firmLawyer := domain.IdentityPrincipal{Identity: &domain.Identity{
		ID: "fl1", Role: domain.RoleFirmLawyer,
		FirmLawyer: &domain.FirmLawyerProfile{FirmID: "firm-1"},
	}}
	body := `{"status":"approved"}`

	for _, target := range []string{
		"/api/firm-clients/applications/a1/status",
		"/api/firm-lawyers/applications/a1/status",
	} {
		t.Run(target, func(t *testing.T) {
			rec := serve(newTestRouter(nil, 0), http.MethodPut, target, "", body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("no token: expected 401, got %d", rec.Code)
			}

			rec = serve(newTestRouter(client, 0), http.MethodPut, target, "tok", body)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("client token: expected 403, got %d", rec.Code)
			}

			rec = serve(newTestRouter(firmLawyer, 0), http.MethodPut, target, "tok", body)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("firm lawyer token: expected 403, got %d", rec.Code)
			}
		})
	}
}
