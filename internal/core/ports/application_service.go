package ports

import (
	"context"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// SubmitApplicationInput carries a new application and the applicant's
// plaintext password, which is hashed before anything is stored.
type SubmitApplicationInput struct {
	Application *domain.Application
	Password    string
}

// DecideInput is an approve or reject request from a reviewer.
type DecideInput struct {
	Kind            domain.ApplicationKind
	ID              string
	Status          domain.ApplicationStatus
	RejectionReason string
	// AssignedLawyerID optionally links an approved firm client to a firm lawyer.
	AssignedLawyerID string
}

// DecisionResult describes the outcome of a decision. TempPassword is only
// set for approved firm clients and is never retrievable again.
type DecisionResult struct {
	Application  *domain.Application
	Identity     *domain.Identity
	TempPassword string
}

type ApplicationList struct {
	Applications []*domain.Application
	Stats        domain.ApplicationStats
}

type ApplicationService interface {
	Submit(ctx context.Context, in SubmitApplicationInput) (*domain.Application, error)
	Decide(ctx context.Context, reviewer domain.Principal, in DecideInput) (*DecisionResult, error)
	List(ctx context.Context, reviewer domain.Principal, filter ApplicationFilter) (*ApplicationList, error)
}
