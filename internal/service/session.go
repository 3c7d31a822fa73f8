package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository"
)

var (
	ErrSessionNotFound = repository.ErrSessionNotFound
	ErrValidation      = errors.New("validation failed")
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByID(ctx context.Context, id uint) (domain.Session, error)
	FindAll(ctx context.Context) ([]domain.Session, error)
	Update(ctx context.Context, session domain.Session) (domain.Session, error)
	UpdateMany(ctx context.Context, sessions []domain.Session) ([]domain.Session, error)
}

type SessionService struct {
	repo SessionRepository
}

func NewSessionService(repo SessionRepository) *SessionService {
	return &SessionService{
		repo: repo,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SessionService) GetSession(ctx context.Context, id uint) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return sessions, nil
}

func (s *SessionService) UpdateSession(ctx context.Context, update domain.SessionUpdate) (domain.Session, error) {
	updated, err := s.prepare(ctx, update)
	if err != nil {
		return domain.Session{}, err
	}

	saved, err := s.repo.Update(ctx, updated)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

// UpdateSessions applies every update or none. All invalid entries are
// reported together in the returned error.
func (s *SessionService) UpdateSessions(ctx context.Context, updates []domain.SessionUpdate) ([]domain.Session, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no session to update", ErrValidation)
	}

	var (
		sessions = make([]domain.Session, 0, len(updates))
		errs     []error
	)
	for _, u := range updates {
		updated, err := s.prepare(ctx, u)
		if err != nil {
			errs = append(errs, fmt.Errorf("session %d: %w", u.ID, err))
			continue
		}

		sessions = append(sessions, updated)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	saved, err := s.repo.UpdateMany(ctx, sessions)
	if err != nil {
		return nil, fmt.Errorf("s.repo.UpdateMany -> %w", err)
	}

	return saved, nil
}

func (s *SessionService) prepare(ctx context.Context, update domain.SessionUpdate) (domain.Session, error) {
	current, err := s.repo.FindByID(ctx, update.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated := update.Apply(current)
	if err = updated.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return updated, nil
}
