package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
	ErrUnknownRole  = domain.ErrUnknownRole
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
	Preregister(ctx context.Context, pre domain.Preregistration) (domain.Preregistration, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

func (s *UserService) ChangeRole(ctx context.Context, id uint, role domain.Role) (domain.User, error) {
	if !role.IsValid() {
		return domain.User{}, ErrUnknownRole
	}

	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return user, nil
}

// Preregister assigns role to email. When the account already exists its
// role is changed right away and applied is true.
func (s *UserService) Preregister(ctx context.Context, email string, role domain.Role) (pre domain.Preregistration, applied bool, err error) {
	if !role.IsValid() {
		return domain.Preregistration{}, false, ErrUnknownRole
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		updated, err := s.repo.UpdateRole(ctx, existing.ID, role)
		if err != nil {
			return domain.Preregistration{}, false, fmt.Errorf("s.repo.UpdateRole -> %w", err)
		}

		return domain.Preregistration{Email: updated.Email, Role: updated.Role, CreatedAt: updated.UpdatedAt}, true, nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return domain.Preregistration{}, false, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	pre, err = s.repo.Preregister(ctx, domain.Preregistration{Email: email, Role: role})
	if err != nil {
		return domain.Preregistration{}, false, fmt.Errorf("s.repo.Preregister -> %w", err)
	}

	return pre, false, nil
}

// HasRole reloads the user and checks it against required.
func (s *UserService) HasRole(ctx context.Context, userID uint, required domain.Role) (domain.User, bool, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, domain.IsAuthorized(user.Role, required), nil
}
