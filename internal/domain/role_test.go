package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAuthorized(t *testing.T) {
	all := []Role{RoleGuest, RoleSeller, RoleManager, RoleAdmin}

	for _, current := range all {
		assert.True(t, IsAuthorized(current, RoleGuest), "%s on guest route", current)
		assert.True(t, IsAuthorized(current, current), "%s on own route", current)
	}

	assert.True(t, IsAuthorized(RoleAdmin, RoleManager))

	assert.False(t, IsAuthorized(RoleGuest, RoleSeller))
	assert.False(t, IsAuthorized(RoleSeller, RoleManager))
	assert.False(t, IsAuthorized(RoleManager, RoleAdmin))
	assert.False(t, IsAuthorized(RoleManager, RoleSeller))
	assert.False(t, IsAuthorized(RoleAdmin, RoleSeller))
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"guest":        RoleGuest,
		"Seller":       RoleSeller,
		" manager ":    RoleManager,
		"admin":        RoleAdmin,
		"d":            RoleGuest,
		"vendeur":      RoleSeller,
		"gestionnaire": RoleManager,
		"G":            RoleManager,
		"A":            RoleAdmin,
	}

	for in, want := range cases {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("superuser")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
