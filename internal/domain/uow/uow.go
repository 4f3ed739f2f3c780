package uow

import (
	"context"

	"ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/history"
)

type Repos struct {
	Applications application.Repository
	History      history.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
