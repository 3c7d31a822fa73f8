package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/festijeux/market-api/internal/domain"
)

func validRole(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	_, err := domain.ParseRole(s)
	return err
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func (req *ChangeRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.By(validRole)),
	)
}

// ParsedRole must only be called after Validate succeeded.
func (req *ChangeRoleRequest) ParsedRole() domain.Role {
	role, _ := domain.ParseRole(req.Role)
	return role
}

type PreregisterRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (req *PreregisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Role, validation.Required, validation.By(validRole)),
	)
}

func (req *PreregisterRequest) ParsedRole() domain.Role {
	role, _ := domain.ParseRole(req.Role)
	return role
}
