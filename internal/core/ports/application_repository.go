package ports

import (
	"context"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// ApplicationFilter carries listing parameters. Kind selects the collection.
type ApplicationFilter struct {
	Kind      domain.ApplicationKind
	LawFirmID string                   // optional
	Status    domain.ApplicationStatus // optional
	Limit     int
}

// ApplicationRepository persists applications of every kind.
type ApplicationRepository interface {
	// Create inserts a pending application; returns domain.ErrDuplicateApplication
	// when a pending application already holds the email (and firm, when scoped).
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, kind domain.ApplicationKind, id string) (*domain.Application, error)
	// HasOpen reports whether a pending or approved application exists for email.
	// lawFirmID narrows the check for firm-scoped kinds.
	HasOpen(ctx context.Context, kind domain.ApplicationKind, email, lawFirmID string) (bool, error)
	List(ctx context.Context, filter ApplicationFilter) ([]*domain.Application, error)

	// Decide atomically moves a pending application to status. At most one
	// concurrent caller wins; the others get domain.ErrAlreadyDecided.
	// Returns domain.ErrApplicationNotFound when id is unknown.
	Decide(ctx context.Context, kind domain.ApplicationKind, id string, status domain.ApplicationStatus, decision domain.Decision, identityID string) error
	// Revert puts an approved application back to pending. Used when the
	// identity insert that follows an approval fails.
	Revert(ctx context.Context, kind domain.ApplicationKind, id string) error
}

// SubmissionGuard is a short-lived lock that narrows the window in which two
// identical submissions can both pass the duplicate check.
type SubmissionGuard interface {
	// Acquire reports whether the caller now holds key.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
