package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
	"github.com/nyaaysathi/legal-api/internal/pkg/metrics"
)

// AdminCredentials is the static admin account. An empty PasswordHash
// disables admin login.
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// AuthService implements registration, login and token resolution.
type AuthService struct {
	identities ports.IdentityRepository
	creds      *CredentialService
	admin      AdminCredentials
	log        zerolog.Logger
	now        func() time.Time

	// dummyHash is compared against on unknown accounts so that every failed
	// login costs one bcrypt comparison.
	dummyHash string
}

func NewAuthService(identities ports.IdentityRepository, creds *CredentialService, admin AdminCredentials, log zerolog.Logger) *AuthService {
	dummy, err := creds.HashPassword(uuid.NewString())
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy password hash")
	}
	admin.Email = domain.NormalizeEmail(admin.Email)
	return &AuthService{
		identities: identities,
		creds:      creds,
		admin:      admin,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
		dummyHash:  dummy,
	}
}

var directRegistrationRoles = map[domain.Role]bool{
	domain.RoleClient:  true,
	domain.RoleLawyer:  true,
	domain.RoleLawFirm: true,
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if !directRegistrationRoles[in.Role] {
		return nil, domain.NewValidationError("user_type", "must be one of: client lawyer law_firm")
	}
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.NewValidationError("", "email, password and full_name are required")
	}

	if err := s.ensureNoIdentity(ctx, email, in.Role); err != nil {
		return nil, err
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	ident := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     in.FullName,
		Role:         in.Role,
		Phone:        in.Phone,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if in.Role == domain.RoleLawFirm {
		ident.LawFirm = &domain.LawFirmProfile{FirmName: in.FirmName}
	}

	if err := s.identities.Create(ctx, ident); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("identity_id", ident.ID).Str("role", string(ident.Role)).Msg("identity registered")

	return s.signIn(ident)
}

// RegisterPaidClient creates an active firm client directly. Payment
// confirmation upstream stands in for a manager's approval.
func (s *AuthService) RegisterPaidClient(ctx context.Context, in ports.PaidRegistrationInput) (*ports.AuthResult, error) {
	if in.PaymentStatus != "paid" {
		return nil, domain.NewValidationError("payment_status", "must be paid")
	}
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || in.Profile.LawFirmID == "" {
		return nil, domain.NewValidationError("", "email, password and law_firm_id are required")
	}

	if err := s.ensureNoIdentity(ctx, email, domain.RoleFirmClient); err != nil {
		return nil, err
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	profile := in.Profile
	profile.Status = "active"
	profile.PaymentStatus = in.PaymentStatus
	profile.PaymentAmount = in.PaymentAmount
	profile.AssignedLawyerID, profile.AssignedLawyerName = "", ""

	ident := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     in.FullName,
		Role:         domain.RoleFirmClient,
		Phone:        in.Phone,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now(),
		FirmClient:   &profile,
	}
	if err := s.identities.Create(ctx, ident); err != nil {
		return nil, fmt.Errorf("register paid client: %w", err)
	}
	s.log.Info().Str("identity_id", ident.ID).Str("law_firm_id", profile.LawFirmID).Msg("paid firm client registered")

	return s.signIn(ident)
}

// Login authenticates email+password against the identity holding role.
// Unknown accounts, wrong roles and wrong passwords all yield
// domain.ErrInvalidCredential.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if !role.IsIdentityRole() || email == "" || password == "" {
		s.creds.VerifyPassword(password, s.dummyHash)
		metrics.LoginAttemptsTotal.WithLabelValues(string(role), "invalid").Inc()
		return nil, domain.ErrInvalidCredential
	}

	ident, err := s.identities.FindByEmail(ctx, email, role)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.creds.VerifyPassword(password, s.dummyHash)
			metrics.LoginAttemptsTotal.WithLabelValues(string(role), "invalid").Inc()
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.passwordMatches(ident, password) {
		metrics.LoginAttemptsTotal.WithLabelValues(string(role), "invalid").Inc()
		return nil, domain.ErrInvalidCredential
	}

	if ident.Role == domain.RoleFirmLawyer && !ident.IsActive {
		metrics.LoginAttemptsTotal.WithLabelValues(string(role), "deactivated").Inc()
		return nil, domain.ErrAccountDeactivated
	}

	if ident.Role == domain.RoleFirmClient {
		at := s.now()
		if err := s.identities.RecordLogin(ctx, ident.ID, ident.Role, at); err != nil {
			s.log.Warn().Err(err).Str("identity_id", ident.ID).Msg("failed to record last login")
		} else {
			ident.LastLogin = &at
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(role), "success").Inc()
	return s.signIn(ident)
}

// passwordMatches accepts the account password or, for approved firm
// clients, the temporary password issued at approval.
func (s *AuthService) passwordMatches(ident *domain.Identity, password string) bool {
	if s.creds.VerifyPassword(password, ident.PasswordHash) {
		return true
	}
	return ident.TempPasswordHash != "" && s.creds.VerifyPassword(password, ident.TempPasswordHash)
}

func (s *AuthService) AdminLogin(_ context.Context, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)
	if s.admin.PasswordHash == "" {
		s.creds.VerifyPassword(password, s.dummyHash)
		return "", domain.ErrInvalidCredential
	}
	passOK := s.creds.VerifyPassword(password, s.admin.PasswordHash)
	if email != s.admin.Email || !passOK {
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.RoleAdmin), "invalid").Inc()
		return "", domain.ErrInvalidCredential
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(domain.RoleAdmin), "success").Inc()
	return s.creds.IssueAdminToken(email)
}

// Authenticate resolves token to a principal. A token whose identity has
// since been deleted yields domain.ErrIdentityNotFound.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := s.creds.DecodeToken(token)
	if err != nil {
		return nil, err
	}

	if claims.Role == domain.RoleAdmin {
		return s.adminPrincipal(token)
	}
	if !claims.Role.IsIdentityRole() {
		return nil, domain.ErrInvalidCredential
	}

	ident, err := s.identities.FindByID(ctx, claims.Subject, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if ident.Role == domain.RoleFirmLawyer && !ident.IsActive {
		return nil, domain.ErrAccountDeactivated
	}
	return domain.IdentityPrincipal{Identity: ident}, nil
}

// adminPrincipal accepts only admin tokens minted for the currently
// configured admin, and none at all while admin login is disabled.
func (s *AuthService) adminPrincipal(token string) (domain.Principal, error) {
	claims, err := s.creds.VerifyAdminToken(token)
	if err != nil {
		return nil, err
	}
	if s.admin.PasswordHash == "" || domain.NormalizeEmail(claims.Email) != s.admin.Email {
		return nil, domain.ErrInvalidCredential
	}
	return domain.AdminPrincipal{Email: s.admin.Email}, nil
}

func (s *AuthService) ensureNoIdentity(ctx context.Context, email string, role domain.Role) error {
	_, err := s.identities.FindByEmail(ctx, email, role)
	switch {
	case err == nil:
		return domain.ErrDuplicateIdentity
	case errors.Is(err, domain.ErrIdentityNotFound):
		return nil
	default:
		return fmt.Errorf("check identity: %w", err)
	}
}

func (s *AuthService) signIn(ident *domain.Identity) (*ports.AuthResult, error) {
	token, err := s.creds.IssueToken(ident.ID, ident.Role)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, Identity: ident}, nil
}
