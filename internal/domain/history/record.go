package history

import (
	"time"

	"ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/workflow"
	"ebursary-backend/pkg/id"

	"github.com/shopspring/decimal"
)

// Record builds the entry for a move of a out of status from.
func Record(from application.Status, a *application.Application, actor workflow.Actor, reason string, now time.Time) *Entry {
	e := &Entry{
		EntryID:       id.NewID32(),
		ApplicationID: a.ID,
		FromStatus:    from,
		ToStatus:      a.Status,
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		ActorRole:     string(actor.Role),
		Reason:        reason,
		CreatedAt:     now.UTC(),
	}
	switch s := a.Stage().(type) {
	case application.Allocated:
		e.Amount = decimal.NewNullDecimal(s.Amount)
		e.FundCategory = a.FundCategory
	case application.Disbursed:
		e.Amount = decimal.NewNullDecimal(s.Amount)
		e.FundCategory = a.FundCategory
	default:
		e.Amount = decimal.NullDecimal{}
	}
	return e
}
