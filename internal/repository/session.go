package repository

import (
	"context"
	"fmt"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindByID(ctx context.Context, id uint) (dao.Session, error)
	FindAll(ctx context.Context) ([]dao.Session, error)
	Update(ctx context.Context, session dao.Session) (dao.Session, error)
	UpdateMany(ctx context.Context, sessions []dao.Session) ([]dao.Session, error)
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := r.dao.Insert(ctx, sessionDomainToDAO(session))
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return sessionDAOToDomain(created), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return sessionDAOToDomain(found), nil
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]domain.Session, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	sessions := make([]domain.Session, 0, len(found))
	for _, s := range found {
		sessions = append(sessions, sessionDAOToDomain(s))
	}

	return sessions, nil
}

func (r *SessionRepository) Update(ctx context.Context, session domain.Session) (domain.Session, error) {
	updated, err := r.dao.Update(ctx, sessionDomainToDAO(session))
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return sessionDAOToDomain(updated), nil
}

func (r *SessionRepository) UpdateMany(ctx context.Context, sessions []domain.Session) ([]domain.Session, error) {
	rows := make([]dao.Session, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, sessionDomainToDAO(s))
	}

	updated, err := r.dao.UpdateMany(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.UpdateMany -> %w", err)
	}

	result := make([]domain.Session, 0, len(updated))
	for _, s := range updated {
		result = append(result, sessionDAOToDomain(s))
	}

	return result, nil
}

func sessionDomainToDAO(s domain.Session) dao.Session {
	return dao.Session{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		FixedFee:    s.FixedFee.Round(2),
		PercentFee:  s.PercentFee.Round(2),
		TotalCharge: s.TotalCharge.Round(2),
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func sessionDAOToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		FixedFee:    s.FixedFee,
		PercentFee:  s.PercentFee,
		TotalCharge: s.TotalCharge,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
