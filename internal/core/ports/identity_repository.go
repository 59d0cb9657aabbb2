package ports

import (
	"context"
	"time"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// IdentityFilter selects identities for listings. FirmID matches the employing
// firm of firm lawyers and the retaining firm of firm clients.
type IdentityFilter struct {
	Role   domain.Role
	FirmID string
	Limit  int
}

// IdentityRepository persists accounts. Lookups are always scoped by role.
type IdentityRepository interface {
	// Create inserts an identity; returns domain.ErrDuplicateIdentity when the
	// (email, role) pair is taken.
	Create(ctx context.Context, identity *domain.Identity) error
	FindByEmail(ctx context.Context, email string, role domain.Role) (*domain.Identity, error)
	FindByID(ctx context.Context, id string, role domain.Role) (*domain.Identity, error)
	List(ctx context.Context, filter IdentityFilter) ([]*domain.Identity, error)
	SetActive(ctx context.Context, id string, role domain.Role, active bool) error
	AssignLawyer(ctx context.Context, clientID, lawyerID, lawyerName string) error
	RecordLogin(ctx context.Context, id string, role domain.Role, at time.Time) error
	Delete(ctx context.Context, id string, role domain.Role) error
}
