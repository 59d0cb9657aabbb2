package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

const directoryLimit = 100

// DirectoryService serves the public lawyer and firm listings and the
// launch waitlist.
type DirectoryService struct {
	identities ports.IdentityRepository
	waitlist   ports.WaitlistRepository
	log        zerolog.Logger
	now        func() time.Time
}

func NewDirectoryService(identities ports.IdentityRepository, waitlist ports.WaitlistRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		identities: identities,
		waitlist:   waitlist,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *DirectoryService) ListLawyers(ctx context.Context) ([]*domain.Identity, error) {
	lawyers, err := s.identities.List(ctx, ports.IdentityFilter{Role: domain.RoleLawyer, Limit: directoryLimit})
	if err != nil {
		return nil, fmt.Errorf("list lawyers: %w", err)
	}
	return lawyers, nil
}

func (s *DirectoryService) ListLawFirms(ctx context.Context) ([]*domain.Identity, error) {
	firms, err := s.identities.List(ctx, ports.IdentityFilter{Role: domain.RoleLawFirm, Limit: directoryLimit})
	if err != nil {
		return nil, fmt.Errorf("list law firms: %w", err)
	}
	return firms, nil
}

func (s *DirectoryService) JoinWaitlist(ctx context.Context, in ports.JoinWaitlistInput) (*domain.WaitlistEntry, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.NewValidationError("", "email and full_name are required")
	}
	entry := &domain.WaitlistEntry{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  in.FullName,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	if err := s.waitlist.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("join waitlist: %w", err)
	}
	s.log.Info().Str("waitlist_id", entry.ID).Msg("waitlist entry added")
	return entry, nil
}
