package ports

import (
	"context"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

type CreateCaseInput struct {
	Title       string
	CaseNumber  string
	Description string
	Status      string
}

type CreateDocumentInput struct {
	CaseID   string
	Title    string
	FileURL  string
	FileType string
}

type CreateBookingInput struct {
	LawyerID    string
	Date        string
	Time        string
	Description string
}

type JoinWaitlistInput struct {
	Email    string
	FullName string
	Message  string
}

// ResourceService manages records owned by a single identity.
type ResourceService interface {
	CreateCase(ctx context.Context, owner *domain.Identity, in CreateCaseInput) (*domain.Case, error)
	ListCases(ctx context.Context, owner *domain.Identity) ([]*domain.Case, error)
	GetCase(ctx context.Context, owner *domain.Identity, id string) (*domain.Case, error)

	CreateDocument(ctx context.Context, owner *domain.Identity, in CreateDocumentInput) (*domain.Document, error)
	ListDocuments(ctx context.Context, owner *domain.Identity, caseID string) ([]*domain.Document, error)

	CreateBooking(ctx context.Context, client *domain.Identity, in CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, owner *domain.Identity) ([]*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, lawyer *domain.Identity, id string, status domain.BookingStatus) (*domain.Booking, error)
}

// DirectoryService serves the public listings and the waitlist.
type DirectoryService interface {
	ListLawyers(ctx context.Context) ([]*domain.Identity, error)
	ListLawFirms(ctx context.Context) ([]*domain.Identity, error)
	JoinWaitlist(ctx context.Context, in JoinWaitlistInput) (*domain.WaitlistEntry, error)
}

type ChatReply struct {
	Response  string
	SessionID string
}

type ChatService interface {
	Send(ctx context.Context, user *domain.Identity, message, systemPrompt string) (*ChatReply, error)
	// SendGuest generates a guest session id when sessionID is empty.
	SendGuest(ctx context.Context, sessionID, message, systemPrompt string) (*ChatReply, error)
	History(ctx context.Context, user *domain.Identity) ([]*domain.ChatExchange, error)
}
