package application

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	// Delete removes the row physically (only drafts are ever deleted)
	Delete(ctx context.Context, a *Application) error

	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// Row-locking variants, only meaningful inside a transaction
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	ListByApplicationIDsForUpdate(ctx context.Context, applicationIDs []string) ([]Application, error)

	ListByStudentID(ctx context.Context, studentID string) ([]Application, error)
	// Applications awaiting allocation plus anything allocated at or after since
	ListQueueCandidates(ctx context.Context, since time.Time) ([]Application, error)
}
