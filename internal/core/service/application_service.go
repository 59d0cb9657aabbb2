package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
	"github.com/nyaaysathi/legal-api/internal/pkg/metrics"
)

type ApplicationService struct {
	apps       ports.ApplicationRepository
	identities ports.IdentityRepository
	creds      *CredentialService
	guard      ports.SubmissionGuard
	log        zerolog.Logger
	now        func() time.Time
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	identities ports.IdentityRepository,
	creds *CredentialService,
	guard ports.SubmissionGuard,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:       apps,
		identities: identities,
		creds:      creds,
		guard:      guard,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates, deduplicates and stores a pending application.
func (s *ApplicationService) Submit(ctx context.Context, in ports.SubmitApplicationInput) (*domain.Application, error) {
	app := in.Application
	if app == nil {
		return nil, domain.NewValidationError("application", "is required")
	}
	app.Email = domain.NormalizeEmail(app.Email)
	if err := app.Validate(); err != nil {
		return nil, err
	}
	if !app.Kind.FirmScoped() {
		app.LawFirmID = ""
	}

	// 1. Hash before taking the lock; bcrypt is the slow part.
	switch {
	case in.Password != "":
		hash, err := s.creds.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		app.PasswordHash = hash
	case app.Kind != domain.KindFirmClient:
		return nil, domain.NewValidationError("password", "is required")
	}

	// 2. Serialize identical submissions. Redis trouble is not fatal.
	key := submissionKey(app)
	acquired, err := s.guard.Acquire(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", string(app.Kind)).Msg("submission guard unavailable, continuing")
	} else if !acquired {
		metrics.ApplicationsRejectedAtSubmitTotal.WithLabelValues("in_flight").Inc()
		return nil, domain.ErrDuplicateApplication
	} else {
		defer func() {
			if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
				s.log.Warn().Err(err).Str("kind", string(app.Kind)).Msg("failed to release submission guard")
			}
		}()
	}

	// 3. Non-rejected application for the same email (and firm).
	open, err := s.apps.HasOpen(ctx, app.Kind, app.Email, app.DedupScope())
	if err != nil {
		return nil, fmt.Errorf("submit application: %w", err)
	}
	if open {
		metrics.ApplicationsRejectedAtSubmitTotal.WithLabelValues("duplicate_application").Inc()
		return nil, domain.ErrDuplicateApplication
	}

	// 4. Existing account for the target role.
	if _, err := s.identities.FindByEmail(ctx, app.Email, app.Kind.Role()); err == nil {
		metrics.ApplicationsRejectedAtSubmitTotal.WithLabelValues("duplicate_identity").Inc()
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, fmt.Errorf("submit application: %w", err)
	}

	app.ID = uuid.NewString()
	app.Status = domain.ApplicationPending
	app.CreatedAt = s.now()
	app.Decision = nil
	app.IdentityID = ""

	if err := s.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("submit application: %w", err)
	}

	metrics.ApplicationsSubmittedTotal.WithLabelValues(string(app.Kind)).Inc()
	s.log.Info().Str("application_id", app.ID).Str("kind", string(app.Kind)).Msg("application submitted")
	return app, nil
}

// Decide approves or rejects a pending application. Approval creates the
// identity; rejection never does.
func (s *ApplicationService) Decide(ctx context.Context, reviewer domain.Principal, in ports.DecideInput) (*ports.DecisionResult, error) {
	if in.Status != domain.ApplicationApproved && in.Status != domain.ApplicationRejected {
		return nil, domain.NewValidationError("status", "must be one of: approved rejected")
	}

	app, err := s.apps.FindByID(ctx, in.Kind, in.ID)
	if err != nil {
		return nil, fmt.Errorf("decide application: %w", err)
	}
	if !canReview(reviewer, app) {
		return nil, domain.ErrForbidden
	}
	if !app.Status.CanTransitionTo(in.Status) {
		return nil, domain.ErrAlreadyDecided
	}

	decision := domain.Decision{
		ReviewedBy: reviewer.SubjectID(),
		ReviewedAt: s.now(),
	}
	if in.Status == domain.ApplicationRejected {
		decision.RejectionReason = in.RejectionReason
		if err := s.apps.Decide(ctx, app.Kind, app.ID, in.Status, decision, ""); err != nil {
			return nil, fmt.Errorf("decide application: %w", err)
		}
		app.Status, app.Decision = in.Status, &decision
		s.recordDecision(app)
		return &ports.DecisionResult{Application: app}, nil
	}

	ident, tempPassword, err := s.materialize(ctx, app, in)
	if err != nil {
		return nil, err
	}

	// The conditional update is the serialization point: one caller wins.
	if err := s.apps.Decide(ctx, app.Kind, app.ID, in.Status, decision, ident.ID); err != nil {
		return nil, fmt.Errorf("decide application: %w", err)
	}

	if err := s.identities.Create(ctx, ident); err != nil {
		if revertErr := s.apps.Revert(context.WithoutCancel(ctx), app.Kind, app.ID); revertErr != nil {
			s.log.Error().Err(revertErr).Str("application_id", app.ID).Msg("failed to revert approval after identity insert failure")
		}
		return nil, fmt.Errorf("create identity for application %s: %w", app.ID, err)
	}

	app.Status, app.Decision, app.IdentityID = in.Status, &decision, ident.ID
	s.recordDecision(app)
	return &ports.DecisionResult{Application: app, Identity: ident, TempPassword: tempPassword}, nil
}

// materialize builds the identity an approval creates. Firm clients keep the
// application id and receive a temporary password.
func (s *ApplicationService) materialize(ctx context.Context, app *domain.Application, in ports.DecideInput) (*domain.Identity, string, error) {
	if app.Kind != domain.KindFirmClient {
		return app.NewIdentity(uuid.NewString(), s.now()), "", nil
	}

	ident := app.NewIdentity(app.ID, s.now())
	if in.AssignedLawyerID != "" {
		lawyer, err := s.firmLawyer(ctx, in.AssignedLawyerID, app.LawFirmID)
		if err != nil {
			return nil, "", err
		}
		ident.FirmClient.AssignedLawyerID = lawyer.ID
		ident.FirmClient.AssignedLawyerName = lawyer.FullName
	}

	tempPassword := domain.TemporaryPassword(app.Email, app.ID)
	hash, err := s.creds.HashPassword(tempPassword)
	if err != nil {
		return nil, "", err
	}
	ident.TempPasswordHash = hash
	return ident, tempPassword, nil
}

func (s *ApplicationService) firmLawyer(ctx context.Context, lawyerID, firmID string) (*domain.Identity, error) {
	lawyer, err := s.identities.FindByID(ctx, lawyerID, domain.RoleFirmLawyer)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrLawyerNotFound
		}
		return nil, fmt.Errorf("find assigned lawyer: %w", err)
	}
	if lawyer.FirmID() != firmID {
		return nil, domain.ErrLawyerNotFound
	}
	return lawyer, nil
}

func (s *ApplicationService) recordDecision(app *domain.Application) {
	metrics.ApplicationDecisionsTotal.WithLabelValues(string(app.Kind), string(app.Status)).Inc()
	s.log.Info().
		Str("application_id", app.ID).
		Str("kind", string(app.Kind)).
		Str("status", string(app.Status)).
		Str("reviewed_by", app.Decision.ReviewedBy).
		Msg("application decided")
}

// List returns applications with per-status counts. Firm-scoped kinds may
// be listed by the owning firm's manager; everything else needs the admin.
func (s *ApplicationService) List(ctx context.Context, reviewer domain.Principal, filter ports.ApplicationFilter) (*ports.ApplicationList, error) {
	if !filter.Kind.Valid() {
		return nil, domain.NewValidationError("kind", "is not a known application kind")
	}
	if _, isAdmin := reviewer.(domain.AdminPrincipal); !isAdmin {
		if !filter.Kind.FirmScoped() || !domain.CanManageFirm(reviewer, filter.LawFirmID) {
			return nil, domain.ErrForbidden
		}
	}

	apps, err := s.apps.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return &ports.ApplicationList{Applications: apps, Stats: domain.CountApplications(apps)}, nil
}

func canReview(reviewer domain.Principal, app *domain.Application) bool {
	if _, isAdmin := reviewer.(domain.AdminPrincipal); isAdmin {
		return true
	}
	return app.Kind.FirmScoped() && domain.CanManageFirm(reviewer, app.LawFirmID)
}

func submissionKey(app *domain.Application) string {
	if scope := app.DedupScope(); scope != "" {
		return fmt.Sprintf("%s:%s:%s", app.Kind, scope, app.Email)
	}
	return fmt.Sprintf("%s:%s", app.Kind, app.Email)
}
