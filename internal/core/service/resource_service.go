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
)

// ResourceService implements ports.ResourceService. Every record it returns
// belongs to the identity passed in.
type ResourceService struct {
	cases      ports.CaseRepository
	documents  ports.DocumentRepository
	bookings   ports.BookingRepository
	identities ports.IdentityRepository
	log        zerolog.Logger
	now        func() time.Time
}

func NewResourceService(
	cases ports.CaseRepository,
	documents ports.DocumentRepository,
	bookings ports.BookingRepository,
	identities ports.IdentityRepository,
	log zerolog.Logger,
) *ResourceService {
	return &ResourceService{
		cases:      cases,
		documents:  documents,
		bookings:   bookings,
		identities: identities,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ResourceService) CreateCase(ctx context.Context, owner *domain.Identity, in ports.CreateCaseInput) (*domain.Case, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	status := in.Status
	if status == "" {
		status = "active"
	}
	now := s.now()
	c := &domain.Case{
		ID:          uuid.NewString(),
		UserID:      owner.ID,
		Title:       in.Title,
		CaseNumber:  in.CaseNumber,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	return c, nil
}

func (s *ResourceService) ListCases(ctx context.Context, owner *domain.Identity) ([]*domain.Case, error) {
	cases, err := s.cases.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return cases, nil
}

// GetCase returns domain.ErrCaseNotFound for cases owned by someone else.
func (s *ResourceService) GetCase(ctx context.Context, owner *domain.Identity, id string) (*domain.Case, error) {
	c, err := s.cases.FindByID(ctx, id, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}

func (s *ResourceService) CreateDocument(ctx context.Context, owner *domain.Identity, in ports.CreateDocumentInput) (*domain.Document, error) {
	if strings.TrimSpace(in.Title) == "" || in.FileURL == "" || in.CaseID == "" {
		return nil, domain.NewValidationError("", "case_id, title and file_url are required")
	}
	if _, err := s.cases.FindByID(ctx, in.CaseID, owner.ID); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	d := &domain.Document{
		ID:         uuid.NewString(),
		CaseID:     in.CaseID,
		UserID:     owner.ID,
		Title:      in.Title,
		FileURL:    in.FileURL,
		FileType:   in.FileType,
		UploadedAt: s.now(),
	}
	if err := s.documents.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

func (s *ResourceService) ListDocuments(ctx context.Context, owner *domain.Identity, caseID string) ([]*domain.Document, error) {
	docs, err := s.documents.List(ctx, owner.ID, caseID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// CreateBooking requests a consultation with an independent lawyer.
func (s *ResourceService) CreateBooking(ctx context.Context, client *domain.Identity, in ports.CreateBookingInput) (*domain.Booking, error) {
	if client.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if in.LawyerID == "" || in.Date == "" || in.Time == "" {
		return nil, domain.NewValidationError("", "lawyer_id, date and time are required")
	}
	if _, err := s.identities.FindByID(ctx, in.LawyerID, domain.RoleLawyer); err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrLawyerNotFound
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	b := &domain.Booking{
		ID:          uuid.NewString(),
		ClientID:    client.ID,
		LawyerID:    in.LawyerID,
		Date:        in.Date,
		Time:        in.Time,
		Description: in.Description,
		Status:      domain.BookingPending,
		CreatedAt:   s.now(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.log.Info().Str("booking_id", b.ID).Str("lawyer_id", b.LawyerID).Msg("booking created")
	return b, nil
}

// ListBookings returns the bookings a client made or a lawyer received.
func (s *ResourceService) ListBookings(ctx context.Context, owner *domain.Identity) ([]*domain.Booking, error) {
	var (
		bookings []*domain.Booking
		err      error
	)
	switch owner.Role {
	case domain.RoleClient:
		bookings, err = s.bookings.ListByClient(ctx, owner.ID)
	case domain.RoleLawyer:
		bookings, err = s.bookings.ListByLawyer(ctx, owner.ID)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *ResourceService) UpdateBookingStatus(ctx context.Context, lawyer *domain.Identity, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of: pending confirmed completed cancelled")
	}
	if lawyer.Role != domain.RoleLawyer {
		return nil, domain.ErrForbidden
	}
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	if b.LawyerID != lawyer.ID {
		return nil, domain.ErrForbidden
	}
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	b.Status = status
	return b, nil
}
