package ports

import (
	"context"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// RegisterInput is a direct sign-up for the client, lawyer, and law firm roles.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
	Phone    string
	FirmName string
}

// PaidRegistrationInput creates a firm client without an application. The
// payment fields are passed through untouched.
type PaidRegistrationInput struct {
	Email         string
	Password      string
	FullName      string
	Phone         string
	PaymentStatus string
	PaymentAmount *float64
	Profile       domain.FirmClientProfile
}

// AuthResult is returned by every operation that signs a principal in.
type AuthResult struct {
	Token    string
	Identity *domain.Identity
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	RegisterPaidClient(ctx context.Context, in PaidRegistrationInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
	// Authenticate resolves a bearer token to the principal it was issued for.
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}
