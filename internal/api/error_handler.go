package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"detail": "<message>"}. Unexpected
// errors are logged here and nowhere else.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ve.Error()
	case errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrDuplicateWaitlistEntry),
		errors.Is(err, domain.ErrAlreadyDecided):
		return http.StatusConflict, rootMessage(err)
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrInvalidCredential), errors.Is(err, domain.ErrExpiredCredential):
		// Expired and invalid tokens are indistinguishable to callers.
		return http.StatusUnauthorized, domain.ErrInvalidCredential.Error()
	case errors.Is(err, domain.ErrAccountDeactivated), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, rootMessage(err)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, notFoundMessage(err)
	case errors.Is(err, domain.ErrServiceUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("dependency unavailable")
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, "upstream timed out"
		}
		return http.StatusServiceUnavailable, domain.ErrServiceUnavailable.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// rootMessage returns the message of the sentinel at the bottom of err so
// that operation context added with %w never reaches the client.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrDuplicateApplication,
		domain.ErrDuplicateIdentity,
		domain.ErrDuplicateWaitlistEntry,
		domain.ErrAlreadyDecided,
		domain.ErrAccountDeactivated,
		domain.ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func notFoundMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrIdentityNotFound,
		domain.ErrApplicationNotFound,
		domain.ErrLawyerNotFound,
		domain.ErrFirmClientNotFound,
		domain.ErrTaskNotFound,
		domain.ErrCaseNotFound,
		domain.ErrBookingNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return domain.ErrNotFound.Error()
}
