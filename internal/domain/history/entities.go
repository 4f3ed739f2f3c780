package history

import (
	"time"

	"ebursary-backend/internal/domain/application"

	"github.com/shopspring/decimal"
)

// Table: application_history. One row per status change, never updated.
type Entry struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	EntryID string `gorm:"column:entry_id;size:32;uniqueIndex:ux_application_history_entry_id" json:"entry_id"`
	// FK to applications.id (numeric)
	ApplicationID uint64              `gorm:"column:application_id;not null;index:idx_application_history_app" json:"-"`
	FromStatus    application.Status  `gorm:"column:from_status;size:32" json:"from_status"`
	ToStatus      application.Status  `gorm:"column:to_status;size:32" json:"to_status"`
	ActorID       string              `gorm:"column:actor_id;size:32" json:"actor_id"`
	ActorName     string              `gorm:"column:actor_name;size:255" json:"actor_name"`
	ActorRole     string              `gorm:"column:actor_role;size:32" json:"actor_role"`
	Amount        decimal.NullDecimal `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	FundCategory  string              `gorm:"column:fund_category;size:128" json:"fund_category,omitempty"`
	Reason        string              `gorm:"column:reason;type:text" json:"reason,omitempty"`
	CreatedAt     time.Time           `gorm:"column:created_at" json:"created_at"`
}

func (Entry) TableName() string { return "application_history" }
