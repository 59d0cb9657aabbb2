package ports

import (
	"context"
	"time"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	ListByAssignee(ctx context.Context, lawyerID string) ([]*domain.Task, error)
	ListByFirm(ctx context.Context, firmID string) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, completedAt *time.Time) error
}

type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	// FindByID only matches cases owned by ownerID.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Case, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Case, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	// List returns the owner's documents, optionally narrowed to one case.
	List(ctx context.Context, ownerID, caseID string) ([]*domain.Document, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Booking, error)
	ListByLawyer(ctx context.Context, lawyerID string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

type WaitlistRepository interface {
	// Create returns domain.ErrDuplicateWaitlistEntry when the email is taken.
	Create(ctx context.Context, e *domain.WaitlistEntry) error
}

type CaseUpdateRepository interface {
	Create(ctx context.Context, u *domain.CaseUpdate) error
	ListByClient(ctx context.Context, clientID string) ([]*domain.CaseUpdate, error)
}

type ChatHistoryRepository interface {
	Insert(ctx context.Context, e *domain.ChatExchange) error
	// Recent returns the user's newest exchanges first.
	Recent(ctx context.Context, userID string, limit int) ([]*domain.ChatExchange, error)
}

// ChatCompleter sends one message to the external language model.
type ChatCompleter interface {
	Complete(ctx context.Context, sessionID, systemPrompt, message string) (string, error)
}
