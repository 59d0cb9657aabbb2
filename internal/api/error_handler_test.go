package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"validation", domain.NewValidationError("email", "is required"), http.StatusUnprocessableEntity, "email is required"},
		{"duplicate application", fmt.Errorf("submit: %w", domain.ErrDuplicateApplication), http.StatusConflict, domain.ErrDuplicateApplication.Error()},
		{"already decided", domain.ErrAlreadyDecided, http.StatusConflict, domain.ErrAlreadyDecided.Error()},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, domain.ErrUnauthenticated.Error()},
		{"expired reads as invalid", domain.ErrExpiredCredential, http.StatusUnauthorized, domain.ErrInvalidCredential.Error()},
		{"deactivated", domain.ErrAccountDeactivated, http.StatusForbidden, domain.ErrAccountDeactivated.Error()},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, domain.ErrForbidden.Error()},
		{"not found", fmt.Errorf("decide application: %w", domain.ErrApplicationNotFound), http.StatusNotFound, "application not found"},
		{"unavailable", fmt.Errorf("find: %w", domain.ErrServiceUnavailable), http.StatusServiceUnavailable, domain.ErrServiceUnavailable.Error()},
		{"deadline", fmt.Errorf("find: %w: %w", domain.ErrServiceUnavailable, context.DeadlineExceeded), http.StatusGatewayTimeout, "upstream timed out"},
		{"unexpected", errors.New("mongo: connection string leaked"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handle(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["detail"] != tt.wantDetail {
				t.Fatalf("expected detail %q, got %q", tt.wantDetail, body["detail"])
			}
		})
	}
}
