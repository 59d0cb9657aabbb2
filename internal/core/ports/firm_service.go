package ports

import (
	"context"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// CreateFirmLawyerInput is a firm lawyer account created directly by a manager.
type CreateFirmLawyerInput struct {
	FullName         string
	Email            string
	Password         string
	Phone            string
	Specialization   string
	ExperienceYears  int
	BarCouncilNumber string
	Languages        []string
}

type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Priority    domain.TaskPriority
	DueDate     string
	CaseID      string
	CaseName    string
}

type AddCaseUpdateInput struct {
	ClientID    string
	UpdateType  string
	Title       string
	Description string
}

// FirmService covers what a law firm manages internally: its lawyers, their
// tasks, and its clients. Every method authorizes against the caller.
type FirmService interface {
	CreateFirmLawyer(ctx context.Context, caller domain.Principal, in CreateFirmLawyerInput) (*domain.Identity, error)
	ListFirmLawyers(ctx context.Context, caller domain.Principal, firmID string) ([]*domain.Identity, error)
	GetFirmLawyer(ctx context.Context, caller domain.Principal, id string) (*domain.Identity, error)
	SetFirmLawyerActive(ctx context.Context, caller domain.Principal, id string, active bool) error
	DeleteFirmLawyer(ctx context.Context, caller domain.Principal, id string) error

	CreateTask(ctx context.Context, caller domain.Principal, in CreateTaskInput) (*domain.Task, error)
	TasksByLawyer(ctx context.Context, caller domain.Principal, lawyerID string) ([]*domain.Task, error)
	TasksByFirm(ctx context.Context, caller domain.Principal, firmID string) ([]*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, caller domain.Principal, taskID string, status domain.TaskStatus) (*domain.Task, error)
	FirmReport(ctx context.Context, caller domain.Principal, firmID string) (*domain.FirmReport, error)

	GetFirmClient(ctx context.Context, caller domain.Principal, id string) (*domain.Identity, error)
	ListFirmClients(ctx context.Context, caller domain.Principal, firmID string) ([]*domain.Identity, error)
	AssignLawyer(ctx context.Context, caller domain.Principal, clientID, lawyerID string) (*domain.Identity, error)
	AddCaseUpdate(ctx context.Context, caller domain.Principal, in AddCaseUpdateInput) (*domain.CaseUpdate, error)
	CaseUpdates(ctx context.Context, caller domain.Principal, clientID string) ([]*domain.CaseUpdate, error)
}
