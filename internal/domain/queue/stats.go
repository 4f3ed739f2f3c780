package queue

import (
	"time"

	"ebursary-backend/internal/domain/application"

	"github.com/shopspring/decimal"
)

type Stats struct {
	Total             int             `json:"total"`
	PendingAllocation int             `json:"pending_allocation"`
	AllocatedToday    int             `json:"allocated_today"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// ComputeStats summarises the base set of apps. "Today" is the calendar day of
// now in now's location.
func ComputeStats(apps []application.Application, now time.Time) Stats {
	start := StartOfDay(now)
	end := start.AddDate(0, 0, 1)

	s := Stats{TotalAmount: decimal.Zero}
	for _, a := range apps {
		if Eligible(a) {
			s.Total++
			s.TotalAmount = s.TotalAmount.Add(a.RequestedAmount)
			if a.Status == application.StatusPendingAllocation {
				s.PendingAllocation++
			}
		}
		if a.AllocationDate != nil {
			at := a.AllocationDate.In(now.Location())
			if !at.Before(start) && at.Before(end) {
				s.AllocatedToday++
			}
		}
	}
	return s
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
