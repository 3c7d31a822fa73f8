package response

import "github.com/festijeux/market-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type VerifyRoleResponse struct {
	Role       domain.Role `json:"role"`
	Authorized bool        `json:"authorized"`
}

type PreregistrationResponse struct {
	domain.Preregistration
	AppliedToExistingUser bool `json:"applied_to_existing_user"`
}
