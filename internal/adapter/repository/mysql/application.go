package mysql

import (
	"context"
	"errors"
	"time"

	appDomain "ebursary-backend/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// Save writes every column, so cleared stamps go back to NULL.
func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) Delete(ctx context.Context, a *appDomain.Application) error {
	res := r.db.WithContext(ctx).Unscoped().Where("application_id = ?", a.ApplicationID).Delete(&appDomain.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, notFound(res.Error)
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, notFound(res.Error)
}

// ListByApplicationIDsForUpdate locks in primary key order so concurrent bulk
// requests acquire rows in the same sequence. Missing ids are simply absent.
func (r *ApplicationRepository) ListByApplicationIDsForUpdate(ctx context.Context, applicationIDs []string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	if len(applicationIDs) == 0 {
		return out, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id IN ?", applicationIDs).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListByStudentID(ctx context.Context, studentID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("application_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListQueueCandidates(ctx context.Context, since time.Time) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("status IN ?", []appDomain.Status{appDomain.StatusApproved, appDomain.StatusPendingAllocation}).
		Or("allocation_date >= ?", since).
		Order("application_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appDomain.ErrNotFound
	}
	return err
}
