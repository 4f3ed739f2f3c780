package mysql

import (
	"context"

	historyDomain "ebursary-backend/internal/domain/history"

	"gorm.io/gorm"
)

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Create(ctx context.Context, e *historyDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *HistoryRepository) ListByApplicationID(ctx context.Context, applicationNumericID uint64) ([]historyDomain.Entry, error) {
	var out []historyDomain.Entry
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationNumericID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
