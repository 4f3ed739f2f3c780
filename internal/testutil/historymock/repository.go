package historymock

import (
	"context"

	domain "ebursary-backend/internal/domain/history"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// With no CreateFn set, created entries are appended to Created.
type Repo struct {
	CreateFn              func(ctx context.Context, e *domain.Entry) error
	ListByApplicationIDFn func(ctx context.Context, applicationNumericID uint64) ([]domain.Entry, error)

	Created []domain.Entry
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	m.Created = append(m.Created, *e)
	return nil
}

func (m *Repo) ListByApplicationID(ctx context.Context, applicationNumericID uint64) ([]domain.Entry, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationNumericID)
	}
	var out []domain.Entry
	for _, e := range m.Created {
		if e.ApplicationID == applicationNumericID {
			out = append(out, e)
		}
	}
	return out, nil
}
