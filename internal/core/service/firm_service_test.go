package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

type firmFixture struct {
	svc        *FirmService
	identities *stubIdentityRepo
	tasks      *stubTaskRepo
	updates    *stubCaseUpdateRepo
	firm       domain.Principal
	otherFirm  domain.Principal
}

func newFirmFixture(t *testing.T) *firmFixture {
	t.Helper()
	identities := newStubIdentityRepo()
	tasks := newStubTaskRepo()
	updates := &stubCaseUpdateRepo{}

	firm := &domain.Identity{ID: "firm-1", Email: "firm@example.com", Role: domain.RoleLawFirm, LawFirm: &domain.LawFirmProfile{FirmName: "Sharma & Co"}}
	other := &domain.Identity{ID: "firm-2", Email: "other@example.com", Role: domain.RoleLawFirm}
	identities.put(firm)
	identities.put(other)

	return &firmFixture{
		svc:        NewFirmService(identities, tasks, updates, newTestCredentials(), zerolog.Nop()),
		identities: identities,
		tasks:      tasks,
		updates:    updates,
		firm:       domain.IdentityPrincipal{Identity: firm},
		otherFirm:  domain.IdentityPrincipal{Identity: other},
	}
}

func (f *firmFixture) addLawyer(t *testing.T, email string) *domain.Identity {
	t.Helper()
	lawyer, err := f.svc.CreateFirmLawyer(context.Background(), f.firm, ports.CreateFirmLawyerInput{
		FullName: "Lawyer " + email, Email: email, Password: "pw", Specialization: "Tax",
	})
	require.NoError(t, err)
	return lawyer
}

func (f *firmFixture) addClient(id, firmID, lawyerID string) *domain.Identity {
	client := &domain.Identity{
		ID: id, Email: id + "@example.com", Role: domain.RoleFirmClient, IsActive: true,
		FirmClient: &domain.FirmClientProfile{LawFirmID: firmID, AssignedLawyerID: lawyerID},
	}
	f.identities.put(client)
	return client
}

func principalOf(i *domain.Identity) domain.Principal {
	return domain.IdentityPrincipal{Identity: i}
}

func TestFirmService_CreateFirmLawyer(t *testing.T) {
	ctx := context.Background()
	f := newFirmFixture(t)

	lawyer := f.addLawyer(t, "Vikram@Example.com")
	assert.Equal(t, "vikram@example.com", lawyer.Email)
	assert.Equal(t, "firm-1", lawyer.FirmLawyer.FirmID)
	assert.Equal(t, "Sharma & Co", lawyer.FirmLawyer.FirmName)
	assert.True(t, lawyer.IsActive)

	_, err := f.svc.CreateFirmLawyer(ctx, f.firm, ports.CreateFirmLawyerInput{FullName: "x", Email: "vikram@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	_, err = f.svc.CreateFirmLawyer(ctx, testAdmin, ports.CreateFirmLawyerInput{FullName: "x", Email: "y@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.CreateFirmLawyer(ctx, principalOf(lawyer), ports.CreateFirmLawyerInput{FullName: "x", Email: "y@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFirmService_LawyerManagementIsScopedToFirm(t *testing.T) {
	ctx := context.Background()
	f := newFirmFixture(t)
	lawyer := f.addLawyer(t, "l@example.com")

	lawyers, err := f.svc.ListFirmLawyers(ctx, f.firm, "firm-1")
	require.NoError(t, err)
	assert.Len(t, lawyers, 1)

	_, err = f.svc.ListFirmLawyers(ctx, f.otherFirm, "firm-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetFirmLawyer(ctx, principalOf(lawyer), lawyer.ID)
	assert.NoError(t, err)
	_, err = f.svc.GetFirmLawyer(ctx, f.otherFirm, lawyer.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, f.svc.SetFirmLawyerActive(ctx, f.otherFirm, lawyer.ID, false), domain.ErrForbidden)
	require.NoError(t, f.svc.SetFirmLawyerActive(ctx, f.firm, lawyer.ID, false))
	got, err := f.identities.FindByID(ctx, lawyer.ID, domain.RoleFirmLawyer)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, f.svc.DeleteFirmLawyer(ctx, testAdmin, lawyer.ID))
	assert.ErrorIs(t, f.svc.DeleteFirmLawyer(ctx, f.firm, lawyer.ID), domain.ErrLawyerNotFound)
}

func TestFirmService_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFirmFixture(t)
	lawyer := f.addLawyer(t, "l@example.com")
	other := f.addLawyer(t, "m@example.com")

	task, err := f.svc.CreateTask(ctx, f.firm, ports.CreateTaskInput{Title: "Draft reply", AssignedTo: lawyer.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Nil(t, task.CompletedAt)

	_, err = f.svc.CreateTask(ctx, f.otherFirm, ports.CreateTaskInput{Title: "Steal", AssignedTo: lawyer.ID})
	assert.ErrorIs(t, err, domain.ErrLawyerNotFound)

	_, err = f.svc.UpdateTaskStatus(ctx, principalOf(other), task.ID, domain.TaskCompleted)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	done, err := f.svc.UpdateTaskStatus(ctx, principalOf(lawyer), task.ID, domain.TaskCompleted)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	reopened, err := f.svc.UpdateTaskStatus(ctx, f.firm, task.ID, domain.TaskInProgress)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
	assert.Nil(t, f.tasks.byID[task.ID].CompletedAt)

	_, err = f.svc.UpdateTaskStatus(ctx, f.firm, task.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrValidation)

	mine, err := f.svc.TasksByLawyer(ctx, principalOf(lawyer), lawyer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.TasksByLawyer(ctx, principalOf(other), lawyer.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	all, err := f.svc.TasksByFirm(ctx, f.firm, "firm-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFirmService_FirmReport(t *testing.T) {
	ctx := context.Background()
	f := newFirmFixture(t)
	lawyer := f.addLawyer(t, "l@example.com")

	for _, title := range []string{"a", "b"} {
		task, err := f.svc.CreateTask(ctx, f.firm, ports.CreateTaskInput{Title: title, AssignedTo: lawyer.ID})
		require.NoError(t, err)
		if title == "a" {
			_, err = f.svc.UpdateTaskStatus(ctx, f.firm, task.ID, domain.TaskCompleted)
			require.NoError(t, err)
		}
	}

	report, err := f.svc.FirmReport(ctx, f.firm, "firm-1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalLawyers)
	assert.Equal(t, 2, report.TotalTasks)
	assert.Equal(t, 1, report.CompletedTasks)
	assert.Equal(t, 50.0, report.CompletionRate)

	_, err = f.svc.FirmReport(ctx, f.otherFirm, "firm-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFirmService_ClientVisibilityAndAssignment(t *testing.T) {
	ctx := context.Background()
	f := newFirmFixture(t)
	lawyer := f.addLawyer(t, "l@example.com")
	other := f.addLawyer(t, "m@example.com")
	client := f.addClient("client-1", "firm-1", "")

	_, err := f.svc.GetFirmClient(ctx, principalOf(lawyer), client.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assigned, err := f.svc.AssignLawyer(ctx, f.firm, client.ID, lawyer.ID)
	require.NoError(t, err)
	assert.Equal(t, lawyer.FullName, assigned.FirmClient.AssignedLawyerName)

	_, err = f.svc.GetFirmClient(ctx, principalOf(lawyer), client.ID)
	assert.NoError(t, err)
	_, err = f.svc.GetFirmClient(ctx, principalOf(other), client.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.GetFirmClient(ctx, principalOf(client), client.ID)
	assert.NoError(t, err)

	_, err = f.svc.AssignLawyer(ctx, f.otherFirm, client.ID, lawyer.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	clients, err := f.svc.ListFirmClients(ctx, f.firm, "firm-1")
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestFirmService_AssignLawyerFromAnotherFirm(t *testing.T) {
	ctx := context.Background()
	f := newFirmFixture(t)
	client := f.addClient("client-1", "firm-1", "")
	f.identities.put(&domain.Identity{
		ID: "outsider", Role: domain.RoleFirmLawyer, IsActive: true,
		FirmLawyer: &domain.FirmLawyerProfile{FirmID: "firm-2"},
	})

	_, err := f.svc.AssignLawyer(ctx, f.firm, client.ID, "outsider")
	assert.ErrorIs(t, err, domain.ErrLawyerNotFound)
}

func TestFirmService_CaseUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFirmFixture(t)
	lawyer := f.addLawyer(t, "l@example.com")
	client := f.addClient("client-1", "firm-1", "")
	outsider := &domain.Identity{ID: "x", Email: "x@example.com", Role: domain.RoleClient}

	update, err := f.svc.AddCaseUpdate(ctx, principalOf(lawyer), ports.AddCaseUpdateInput{ClientID: client.ID, Title: "Hearing moved"})
	require.NoError(t, err)
	assert.Equal(t, "l@example.com", update.CreatedBy)
	assert.Equal(t, "firm-1", update.LawFirmID)
	assert.Equal(t, "general", update.UpdateType)

	_, err = f.svc.AddCaseUpdate(ctx, principalOf(outsider), ports.AddCaseUpdateInput{ClientID: client.ID, Title: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updates, err := f.svc.CaseUpdates(ctx, principalOf(client), client.ID)
	require.NoError(t, err)
	assert.Len(t, updates, 1)

	_, err = f.svc.CaseUpdates(ctx, principalOf(outsider), client.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.CaseUpdates(ctx, f.firm, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
