package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrDuplicateApplication   = errors.New("an application for this email is already pending or approved")
	ErrDuplicateIdentity      = errors.New("an account with this email already exists")
	ErrDuplicateWaitlistEntry = errors.New("email is already on the waitlist")
	ErrUnauthenticated        = errors.New("not authenticated")
	ErrInvalidCredential      = errors.New("invalid credentials")
	ErrExpiredCredential      = errors.New("credentials expired")
	ErrAccountDeactivated     = errors.New("account is deactivated")
	ErrForbidden              = errors.New("access forbidden")
	ErrNotFound               = errors.New("not found")
	ErrAlreadyDecided         = errors.New("application already processed")
	ErrServiceUnavailable     = errors.New("service unavailable")
)

// Entity-specific not-found errors. All of them satisfy errors.Is(err, ErrNotFound).
var (
	ErrIdentityNotFound    = fmt.Errorf("identity %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)
	ErrLawyerNotFound      = fmt.Errorf("lawyer %w", ErrNotFound)
	ErrFirmClientNotFound  = fmt.Errorf("client %w", ErrNotFound)
	ErrTaskNotFound        = fmt.Errorf("task %w", ErrNotFound)
	ErrCaseNotFound        = fmt.Errorf("case %w", ErrNotFound)
	ErrBookingNotFound     = fmt.Errorf("booking %w", ErrNotFound)
)

// ValidationError reports a single malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
