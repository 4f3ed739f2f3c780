package applicationmock

import (
	"context"
	"errors"
	"time"

	domain "ebursary-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("applicationmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writers succeed; unset readers return errUnimplemented.
type Repo struct {
	CreateFn                        func(ctx context.Context, a *domain.Application) error
	SaveFn                          func(ctx context.Context, a *domain.Application) error
	DeleteFn                        func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn            func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn   func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListByApplicationIDsForUpdateFn func(ctx context.Context, applicationIDs []string) ([]domain.Application, error)
	ListByStudentIDFn               func(ctx context.Context, studentID string) ([]domain.Application, error)
	ListQueueCandidatesFn           func(ctx context.Context, since time.Time) ([]domain.Application, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, a *domain.Application) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByApplicationIDsForUpdate(ctx context.Context, applicationIDs []string) ([]domain.Application, error) {
	if m.ListByApplicationIDsForUpdateFn != nil {
		return m.ListByApplicationIDsForUpdateFn(ctx, applicationIDs)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByStudentID(ctx context.Context, studentID string) ([]domain.Application, error) {
	if m.ListByStudentIDFn != nil {
		return m.ListByStudentIDFn(ctx, studentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListQueueCandidates(ctx context.Context, since time.Time) ([]domain.Application, error) {
	if m.ListQueueCandidatesFn != nil {
		return m.ListQueueCandidatesFn(ctx, since)
	}
	return nil, errUnimplemented
}
