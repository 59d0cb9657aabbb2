package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/pkg/metrics"
)

const (
	defaultTokenTTL      = 30 * 24 * time.Hour
	defaultAdminTokenTTL = 7 * 24 * time.Hour
)

// Claims is the payload of every bearer token. Subject holds the identity id,
// or the admin email for admin tokens.
type Claims struct {
	Role  domain.Role `json:"role"`
	Email string      `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// CredentialService hashes passwords and issues and verifies HS256 tokens.
type CredentialService struct {
	secret   []byte
	tokenTTL time.Duration
	adminTTL time.Duration
	cost     int
	now      func() time.Time
}

type CredentialOption func(*CredentialService)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) CredentialOption {
	return func(s *CredentialService) { s.cost = cost }
}

// WithClock overrides the time source used for issuing and checking expiry.
func WithClock(now func() time.Time) CredentialOption {
	return func(s *CredentialService) { s.now = now }
}

func NewCredentialService(secret string, tokenTTL, adminTTL time.Duration, opts ...CredentialOption) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if adminTTL <= 0 {
		adminTTL = defaultAdminTokenTTL
	}
	s := &CredentialService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		adminTTL: adminTTL,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CredentialService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash. A malformed or empty
// hash is a mismatch, never an error.
func (s *CredentialService) VerifyPassword(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *CredentialService) IssueToken(subjectID string, role domain.Role) (string, error) {
	return s.sign(Claims{Role: role}, subjectID, s.tokenTTL)
}

func (s *CredentialService) IssueAdminToken(email string) (string, error) {
	return s.sign(Claims{Role: domain.RoleAdmin, Email: email}, email, s.adminTTL)
}

func (s *CredentialService) sign(claims Claims, subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	metrics.TokensIssuedTotal.WithLabelValues(string(claims.Role)).Inc()
	return signed, nil
}

// DecodeToken verifies the signature and expiry of token. Expired tokens
// yield domain.ErrExpiredCredential; anything else wrong yields
// domain.ErrInvalidCredential.
func (s *CredentialService) DecodeToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredCredential
		}
		return nil, domain.ErrInvalidCredential
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, domain.ErrInvalidCredential
	}
	return claims, nil
}

// VerifyAdminToken decodes token and rejects it unless it carries role=admin.
func (s *CredentialService) VerifyAdminToken(token string) (*Claims, error) {
	claims, err := s.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != domain.RoleAdmin || claims.Email == "" {
		return nil, domain.ErrForbidden
	}
	return claims, nil
}
