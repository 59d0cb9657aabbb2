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

// FirmService implements ports.FirmService.
type FirmService struct {
	identities ports.IdentityRepository
	tasks      ports.TaskRepository
	updates    ports.CaseUpdateRepository
	creds      *CredentialService
	log        zerolog.Logger
	now        func() time.Time
}

func NewFirmService(
	identities ports.IdentityRepository,
	tasks ports.TaskRepository,
	updates ports.CaseUpdateRepository,
	creds *CredentialService,
	log zerolog.Logger,
) *FirmService {
	return &FirmService{
		identities: identities,
		tasks:      tasks,
		updates:    updates,
		creds:      creds,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// manager returns the law firm identity acting for caller.
func manager(caller domain.Principal) (*domain.Identity, error) {
	ident, err := domain.AsIdentity(caller)
	if err != nil {
		return nil, err
	}
	if ident.Role != domain.RoleLawFirm {
		return nil, domain.ErrForbidden
	}
	return ident, nil
}

func (s *FirmService) CreateFirmLawyer(ctx context.Context, caller domain.Principal, in ports.CreateFirmLawyerInput) (*domain.Identity, error) {
	firm, err := manager(caller)
	if err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.NewValidationError("", "full_name, email and password are required")
	}

	if _, err := s.identities.FindByEmail(ctx, email, domain.RoleFirmLawyer); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, fmt.Errorf("create firm lawyer: %w", err)
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	ident := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     in.FullName,
		Role:         domain.RoleFirmLawyer,
		Phone:        in.Phone,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now(),
		FirmLawyer: &domain.FirmLawyerProfile{
			FirmID:           firm.ID,
			FirmName:         firm.DisplayFirmName(),
			Specialization:   in.Specialization,
			ExperienceYears:  in.ExperienceYears,
			BarCouncilNumber: in.BarCouncilNumber,
			Languages:        in.Languages,
			Rating:           4.5,
		},
	}
	if err := s.identities.Create(ctx, ident); err != nil {
		return nil, fmt.Errorf("create firm lawyer: %w", err)
	}
	s.log.Info().Str("identity_id", ident.ID).Str("firm_id", firm.ID).Msg("firm lawyer created")
	return ident, nil
}

func (s *FirmService) ListFirmLawyers(ctx context.Context, caller domain.Principal, firmID string) ([]*domain.Identity, error) {
	if !domain.CanManageFirm(caller, firmID) {
		return nil, domain.ErrForbidden
	}
	lawyers, err := s.identities.List(ctx, ports.IdentityFilter{Role: domain.RoleFirmLawyer, FirmID: firmID})
	if err != nil {
		return nil, fmt.Errorf("list firm lawyers: %w", err)
	}
	return lawyers, nil
}

// GetFirmLawyer is visible to the lawyer, their firm and the admin.
func (s *FirmService) GetFirmLawyer(ctx context.Context, caller domain.Principal, id string) (*domain.Identity, error) {
	lawyer, err := s.findFirmLawyer(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.SubjectID() != lawyer.ID && !domain.CanManageFirm(caller, lawyer.FirmID()) {
		return nil, domain.ErrForbidden
	}
	return lawyer, nil
}

func (s *FirmService) SetFirmLawyerActive(ctx context.Context, caller domain.Principal, id string, active bool) error {
	lawyer, err := s.findFirmLawyer(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanManageFirm(caller, lawyer.FirmID()) {
		return domain.ErrForbidden
	}
	if err := s.identities.SetActive(ctx, id, domain.RoleFirmLawyer, active); err != nil {
		return fmt.Errorf("set firm lawyer active: %w", err)
	}
	s.log.Info().Str("identity_id", id).Bool("active", active).Msg("firm lawyer status changed")
	return nil
}

func (s *FirmService) DeleteFirmLawyer(ctx context.Context, caller domain.Principal, id string) error {
	lawyer, err := s.findFirmLawyer(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanManageFirm(caller, lawyer.FirmID()) {
		return domain.ErrForbidden
	}
	if err := s.identities.Delete(ctx, id, domain.RoleFirmLawyer); err != nil {
		return fmt.Errorf("delete firm lawyer: %w", err)
	}
	s.log.Info().Str("identity_id", id).Msg("firm lawyer deleted")
	return nil
}

func (s *FirmService) findFirmLawyer(ctx context.Context, id string) (*domain.Identity, error) {
	lawyer, err := s.identities.FindByID(ctx, id, domain.RoleFirmLawyer)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrLawyerNotFound
		}
		return nil, fmt.Errorf("find firm lawyer: %w", err)
	}
	return lawyer, nil
}

func (s *FirmService) CreateTask(ctx context.Context, caller domain.Principal, in ports.CreateTaskInput) (*domain.Task, error) {
	firm, err := manager(caller)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || in.AssignedTo == "" {
		return nil, domain.NewValidationError("", "title and assigned_to are required")
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.NewValidationError("priority", "must be one of: high medium low")
	}

	lawyer, err := s.findFirmLawyer(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}
	if lawyer.FirmID() != firm.ID {
		return nil, domain.ErrLawyerNotFound
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		FirmID:      firm.ID,
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  lawyer.ID,
		AssignedBy:  firm.ID,
		Priority:    priority,
		Status:      domain.TaskPending,
		DueDate:     in.DueDate,
		CaseID:      in.CaseID,
		CaseName:    in.CaseName,
		CreatedAt:   s.now(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *FirmService) TasksByLawyer(ctx context.Context, caller domain.Principal, lawyerID string) ([]*domain.Task, error) {
	if caller.SubjectID() != lawyerID {
		lawyer, err := s.findFirmLawyer(ctx, lawyerID)
		if err != nil {
			return nil, err
		}
		if !domain.CanManageFirm(caller, lawyer.FirmID()) {
			return nil, domain.ErrForbidden
		}
	}
	tasks, err := s.tasks.ListByAssignee(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *FirmService) TasksByFirm(ctx context.Context, caller domain.Principal, firmID string) ([]*domain.Task, error) {
	if !domain.CanManageFirm(caller, firmID) {
		return nil, domain.ErrForbidden
	}
	tasks, err := s.tasks.ListByFirm(ctx, firmID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskStatus may be called by the assignee or the firm.
func (s *FirmService) UpdateTaskStatus(ctx context.Context, caller domain.Principal, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of: pending in_progress completed")
	}
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if caller.SubjectID() != task.AssignedTo && !domain.CanManageFirm(caller, task.FirmID) {
		return nil, domain.ErrForbidden
	}

	task.SetStatus(status, s.now())
	if err := s.tasks.UpdateStatus(ctx, task.ID, task.Status, task.CompletedAt); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *FirmService) FirmReport(ctx context.Context, caller domain.Principal, firmID string) (*domain.FirmReport, error) {
	if !domain.CanManageFirm(caller, firmID) {
		return nil, domain.ErrForbidden
	}
	lawyers, err := s.identities.List(ctx, ports.IdentityFilter{Role: domain.RoleFirmLawyer, FirmID: firmID})
	if err != nil {
		return nil, fmt.Errorf("firm report: %w", err)
	}
	tasks, err := s.tasks.ListByFirm(ctx, firmID)
	if err != nil {
		return nil, fmt.Errorf("firm report: %w", err)
	}
	report := domain.BuildFirmReport(lawyers, tasks)
	return &report, nil
}

// GetFirmClient is visible to the client, their firm, their assigned lawyer
// and the admin.
func (s *FirmService) GetFirmClient(ctx context.Context, caller domain.Principal, id string) (*domain.Identity, error) {
	client, err := s.findFirmClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSeeClient(caller, client) {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func canSeeClient(caller domain.Principal, client *domain.Identity) bool {
	if caller.SubjectID() == client.ID || domain.CanManageFirm(caller, client.FirmID()) {
		return true
	}
	return client.FirmClient != nil && client.FirmClient.AssignedLawyerID != "" &&
		caller.SubjectID() == client.FirmClient.AssignedLawyerID
}

func (s *FirmService) ListFirmClients(ctx context.Context, caller domain.Principal, firmID string) ([]*domain.Identity, error) {
	if !domain.CanManageFirm(caller, firmID) {
		return nil, domain.ErrForbidden
	}
	clients, err := s.identities.List(ctx, ports.IdentityFilter{Role: domain.RoleFirmClient, FirmID: firmID})
	if err != nil {
		return nil, fmt.Errorf("list firm clients: %w", err)
	}
	return clients, nil
}

func (s *FirmService) AssignLawyer(ctx context.Context, caller domain.Principal, clientID, lawyerID string) (*domain.Identity, error) {
	client, err := s.findFirmClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageFirm(caller, client.FirmID()) {
		return nil, domain.ErrForbidden
	}
	lawyer, err := s.findFirmLawyer(ctx, lawyerID)
	if err != nil {
		return nil, err
	}
	if lawyer.FirmID() != client.FirmID() {
		return nil, domain.ErrLawyerNotFound
	}

	if err := s.identities.AssignLawyer(ctx, client.ID, lawyer.ID, lawyer.FullName); err != nil {
		return nil, fmt.Errorf("assign lawyer: %w", err)
	}
	client.FirmClient.AssignedLawyerID = lawyer.ID
	client.FirmClient.AssignedLawyerName = lawyer.FullName
	s.log.Info().Str("client_id", client.ID).Str("lawyer_id", lawyer.ID).Msg("lawyer assigned to client")
	return client, nil
}

// AddCaseUpdate may be posted by the firm or any of its lawyers.
func (s *FirmService) AddCaseUpdate(ctx context.Context, caller domain.Principal, in ports.AddCaseUpdateInput) (*domain.CaseUpdate, error) {
	author, err := domain.AsIdentity(caller)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	client, err := s.findFirmClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	firmID := client.FirmID()
	isFirmLawyer := author.Role == domain.RoleFirmLawyer && author.FirmID() == firmID
	if !isFirmLawyer && !domain.CanManageFirm(caller, firmID) {
		return nil, domain.ErrForbidden
	}

	update := &domain.CaseUpdate{
		ID:          uuid.NewString(),
		ClientID:    client.ID,
		LawFirmID:   firmID,
		UpdateType:  in.UpdateType,
		Title:       in.Title,
		Description: in.Description,
		CreatedBy:   author.Email,
		CreatedAt:   s.now(),
	}
	if update.UpdateType == "" {
		update.UpdateType = "general"
	}
	if err := s.updates.Create(ctx, update); err != nil {
		return nil, fmt.Errorf("add case update: %w", err)
	}
	return update, nil
}

func (s *FirmService) CaseUpdates(ctx context.Context, caller domain.Principal, clientID string) ([]*domain.CaseUpdate, error) {
	client, err := s.findFirmClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !canSeeClient(caller, client) {
		if author, err := domain.AsIdentity(caller); err != nil ||
			author.Role != domain.RoleFirmLawyer || author.FirmID() != client.FirmID() {
			return nil, domain.ErrForbidden
		}
	}
	updates, err := s.updates.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("list case updates: %w", err)
	}
	return updates, nil
}

func (s *FirmService) findFirmClient(ctx context.Context, id string) (*domain.Identity, error) {
	client, err := s.identities.FindByID(ctx, id, domain.RoleFirmClient)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrFirmClientNotFound
		}
		return nil, fmt.Errorf("find firm client: %w", err)
	}
	if client.FirmClient == nil {
		client.FirmClient = &domain.FirmClientProfile{}
	}
	return client, nil
}
