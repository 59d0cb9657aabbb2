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

func TestDirectoryService_ListsByRole(t *testing.T) {
	identities := newStubIdentityRepo()
	identities.put(&domain.Identity{ID: "l1", Email: "l1@example.com", Role: domain.RoleLawyer})
	identities.put(&domain.Identity{ID: "l2", Email: "l2@example.com", Role: domain.RoleLawyer})
	identities.put(&domain.Identity{ID: "f1", Email: "f1@example.com", Role: domain.RoleLawFirm})
	identities.put(&domain.Identity{ID: "c1", Email: "c1@example.com", Role: domain.RoleClient})
	svc := NewDirectoryService(identities, &stubWaitlistRepo{}, zerolog.Nop())

	lawyers, err := svc.ListLawyers(context.Background())
	require.NoError(t, err)
	require.Len(t, lawyers, 2)
	assert.Equal(t, "l1", lawyers[0].ID)

	firms, err := svc.ListLawFirms(context.Background())
	require.NoError(t, err)
	require.Len(t, firms, 1)
	assert.Equal(t, domain.RoleLawFirm, firms[0].Role)
}

func TestDirectoryService_JoinWaitlist(t *testing.T) {
	svc := NewDirectoryService(newStubIdentityRepo(), &stubWaitlistRepo{}, zerolog.Nop())
	ctx := context.Background()

	entry, err := svc.JoinWaitlist(ctx, ports.JoinWaitlistInput{Email: " Priya@Example.com ", FullName: "Priya"})
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", entry.Email)
	assert.NotEmpty(t, entry.ID)

	_, err = svc.JoinWaitlist(ctx, ports.JoinWaitlistInput{Email: "priya@example.com", FullName: "Priya"})
	assert.ErrorIs(t, err, domain.ErrDuplicateWaitlistEntry)

	_, err = svc.JoinWaitlist(ctx, ports.JoinWaitlistInput{Email: "x@example.com", FullName: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
