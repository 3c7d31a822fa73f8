package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festijeux/market-api/internal/domain"
)

func TestAuthService_SignupLogin(t *testing.T) {
	repo := newFakeUserRepo()
	revoker := &fakeRevoker{}
	svc := NewAuthService(repo, revoker)
	ctx := context.Background()

	user, err := svc.Signup(ctx, domain.User{Email: "alice@example.com", Password: "secret123", Name: "Alice", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	_, err = svc.Signup(ctx, domain.User{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	logged, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-pass1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	revoker := &fakeRevoker{}
	svc := NewAuthService(newFakeUserRepo(), revoker)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "live", time.Now().Add(time.Hour)))
	require.NoError(t, svc.Logout(ctx, "expired", time.Now().Add(-time.Minute)))

	assert.Contains(t, revoker.revoked, "live")
	assert.NotContains(t, revoker.revoked, "expired")
}

func TestUserService_Preregister(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, &fakeRevoker{})
	svc := NewUserService(repo)
	ctx := context.Background()

	_, applied, err := svc.Preregister(ctx, "bob@example.com", domain.RoleSeller)
	require.NoError(t, err)
	assert.False(t, applied)

	bob, err := auth.Signup(ctx, domain.User{Email: "bob@example.com", Password: "secret123", Name: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, bob.Role)

	_, applied, err = svc.Preregister(ctx, "bob@example.com", domain.RoleManager)
	require.NoError(t, err)
	assert.True(t, applied)

	_, ok, err := svc.HasRole(ctx, bob.ID, domain.RoleManager)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = svc.HasRole(ctx, bob.ID, domain.RoleSeller)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.Preregister(ctx, "bob@example.com", domain.Role("root"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestUserService_ChangeRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.User{Email: "carol@example.com", Role: domain.RoleGuest})
	require.NoError(t, err)

	updated, err := svc.ChangeRole(ctx, created.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = svc.ChangeRole(ctx, 99, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.ChangeRole(ctx, created.ID, "")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestSessionService_UpdateSessions(t *testing.T) {
	repo := newFakeSessionRepo(springFair(), springFair())
	svc := NewSessionService(repo)
	ctx := context.Background()

	fee := decimal.NewFromInt(5)
	negative := decimal.NewFromInt(-5)
	description := "evening edition"

	_, err := svc.UpdateSessions(ctx, []domain.SessionUpdate{
		{ID: 1, FixedFee: &fee},
		{ID: 2, PercentFee: &negative},
		{ID: 3, Description: &description},
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	unchanged, err := svc.GetSession(ctx, 1)
	require.NoError(t, err)
	assert.True(t, unchanged.FixedFee.Equal(decimal.NewFromInt(2)))

	updated, err := svc.UpdateSessions(ctx, []domain.SessionUpdate{
		{ID: 1, FixedFee: &fee},
		{ID: 2, Description: &description},
	})
	require.NoError(t, err)
	assert.Len(t, updated, 2)

	second, err := svc.GetSession(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, description, second.Description)

	_, err = svc.UpdateSessions(ctx, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSessionService_CreateAndUpdate(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo())
	ctx := context.Background()

	bad := springFair()
	bad.EndDate = bad.StartDate.Add(-time.Hour)
	_, err := svc.CreateSession(ctx, bad)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, domain.ErrSessionDates)

	created, err := svc.CreateSession(ctx, springFair())
	require.NoError(t, err)

	end := created.StartDate.Add(-time.Hour)
	_, err = svc.UpdateSession(ctx, domain.SessionUpdate{ID: created.ID, EndDate: &end})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateSession(ctx, domain.SessionUpdate{ID: 7})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
