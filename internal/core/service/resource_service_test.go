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

func newTestResourceService() (*ResourceService, *stubIdentityRepo) {
	identities := newStubIdentityRepo()
	svc := NewResourceService(newStubCaseRepo(), &stubDocumentRepo{}, newStubBookingRepo(), identities, zerolog.Nop())
	return svc, identities
}

func TestResourceService_CasesAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestResourceService()
	alice := &domain.Identity{ID: "alice", Role: domain.RoleClient}
	bob := &domain.Identity{ID: "bob", Role: domain.RoleClient}

	c, err := svc.CreateCase(ctx, alice, ports.CreateCaseInput{Title: "Property dispute"})
	require.NoError(t, err)
	assert.Equal(t, "active", c.Status)
	assert.Equal(t, "alice", c.UserID)

	_, err = svc.GetCase(ctx, bob, c.ID)
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)

	bobs, err := svc.ListCases(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = svc.CreateCase(ctx, alice, ports.CreateCaseInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResourceService_DocumentsRequireOwnedCase(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestResourceService()
	alice := &domain.Identity{ID: "alice", Role: domain.RoleClient}
	bob := &domain.Identity{ID: "bob", Role: domain.RoleClient}

	c, err := svc.CreateCase(ctx, alice, ports.CreateCaseInput{Title: "Lease"})
	require.NoError(t, err)

	_, err = svc.CreateDocument(ctx, bob, ports.CreateDocumentInput{CaseID: c.ID, Title: "x", FileURL: "https://files/x.pdf"})
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)

	doc, err := svc.CreateDocument(ctx, alice, ports.CreateDocumentInput{CaseID: c.ID, Title: "Agreement", FileURL: "https://files/a.pdf", FileType: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.UserID)

	docs, err := svc.ListDocuments(ctx, alice, c.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = svc.ListDocuments(ctx, bob, "")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestResourceService_Bookings(t *testing.T) {
	ctx := context.Background()
	svc, identities := newTestResourceService()
	client := &domain.Identity{ID: "client-1", Role: domain.RoleClient}
	lawyer := &domain.Identity{ID: "lawyer-1", Role: domain.RoleLawyer}
	otherLawyer := &domain.Identity{ID: "lawyer-2", Role: domain.RoleLawyer}
	identities.put(lawyer)
	identities.put(otherLawyer)

	_, err := svc.CreateBooking(ctx, client, ports.CreateBookingInput{LawyerID: "nobody", Date: "2026-11-02", Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrLawyerNotFound)

	_, err = svc.CreateBooking(ctx, lawyer, ports.CreateBookingInput{LawyerID: "lawyer-2", Date: "2026-11-02", Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	b, err := svc.CreateBooking(ctx, client, ports.CreateBookingInput{LawyerID: "lawyer-1", Date: "2026-11-02", Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)

	received, err := svc.ListBookings(ctx, lawyer)
	require.NoError(t, err)
	assert.Len(t, received, 1)
	made, err := svc.ListBookings(ctx, client)
	require.NoError(t, err)
	assert.Len(t, made, 1)

	_, err = svc.UpdateBookingStatus(ctx, otherLawyer, b.ID, domain.BookingConfirmed)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.UpdateBookingStatus(ctx, lawyer, b.ID, "maybe")
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := svc.UpdateBookingStatus(ctx, lawyer, b.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
}

func TestDirectoryService(t *testing.T) {
	ctx := context.Background()
	identities := newStubIdentityRepo()
	identities.put(&domain.Identity{ID: "l1", Role: domain.RoleLawyer})
	identities.put(&domain.Identity{ID: "f1", Role: domain.RoleLawFirm})
	identities.put(&domain.Identity{ID: "c1", Role: domain.RoleClient})
	svc := NewDirectoryService(identities, &stubWaitlistRepo{}, zerolog.Nop())

	lawyers, err := svc.ListLawyers(ctx)
	require.NoError(t, err)
	require.Len(t, lawyers, 1)
	assert.Equal(t, "l1", lawyers[0].ID)

	firms, err := svc.ListLawFirms(ctx)
	require.NoError(t, err)
	require.Len(t, firms, 1)

	entry, err := svc.JoinWaitlist(ctx, ports.JoinWaitlistInput{Email: "W@example.com", FullName: "W"})
	require.NoError(t, err)
	assert.Equal(t, "w@example.com", entry.Email)

	_, err = svc.JoinWaitlist(ctx, ports.JoinWaitlistInput{Email: "w@example.com", FullName: "W"})
	assert.ErrorIs(t, err, domain.ErrDuplicateWaitlistEntry)

	_, err = svc.JoinWaitlist(ctx, ports.JoinWaitlistInput{Email: "", FullName: "W"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
