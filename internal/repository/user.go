package repository

import (
	"context"
	"fmt"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	UpdateRole(ctx context.Context, id uint, role string) (dao.User, error)
	UpsertPreregistration(ctx context.Context, pre dao.Preregistration) (dao.Preregistration, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		Phone:    user.Phone,
		Address:  user.Address,
		Role:     string(user.Role),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, r.daoToDomain(u))
	}

	return users, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error) {
	updated, err := r.dao.UpdateRole(ctx, id, string(role))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Preregister(ctx context.Context, pre domain.Preregistration) (domain.Preregistration, error) {
	saved, err := r.dao.UpsertPreregistration(ctx, dao.Preregistration{
		Email: pre.Email,
		Role:  string(pre.Role),
	})
	if err != nil {
		return domain.Preregistration{}, fmt.Errorf("r.dao.UpsertPreregistration -> %w", err)
	}

	return domain.Preregistration{
		Email:     saved.Email,
		Role:      domain.Role(saved.Role),
		CreatedAt: saved.CreatedAt,
	}, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	// Rows written by older back offices may still carry legacy role codes.
	role, err := domain.ParseRole(u.Role)
	if err != nil {
		role = domain.RoleGuest
	}

	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
