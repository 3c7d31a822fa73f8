package domain

import (
	"errors"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

type Role string

const (
	RoleGuest   Role = "guest"
	RoleSeller  Role = "seller"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// legacyRoles maps the codes stored by the previous festival back office.
var legacyRoles = map[string]Role{
	"d":            RoleGuest,
	"0":            RoleGuest,
	"vendeur":      RoleSeller,
	"v":            RoleSeller,
	"gestionnaire": RoleManager,
	"g":            RoleManager,
	"a":            RoleAdmin,
}

func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch Role(normalized) {
	case RoleGuest, RoleSeller, RoleManager, RoleAdmin:
		return Role(normalized), nil
	}

	if role, ok := legacyRoles[normalized]; ok {
		return role, nil
	}

	return "", ErrUnknownRole
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleSeller, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsAuthorized reports whether a caller holding current may perform an
// operation that requires required. Admins inherit manager permissions and
// nothing else is implied.
func IsAuthorized(current, required Role) bool {
	if required == RoleGuest {
		return true
	}
	if current == required {
		return true
	}

	return current == RoleAdmin && required == RoleManager
}
