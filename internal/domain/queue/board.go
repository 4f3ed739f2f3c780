package queue

import (
	"fmt"
	"time"

	"ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/workflow"
)

// Board is the allocation desk state of one actor: the collection being
// worked, the current criteria, the selection and the bulk-action flag.
// A Board is not safe for concurrent use.
type Board struct {
	actor    workflow.Actor
	apps     []application.Application
	criteria Criteria
	selected map[string]struct{}
	bulkOpen bool
	now      func() time.Time
}

// NewBoard copies apps; later changes to the caller's slice are not seen.
func NewBoard(actor workflow.Actor, apps []application.Application, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	cp := make([]application.Application, len(apps))
	copy(cp, apps)
	return &Board{
		actor:    actor,
		apps:     cp,
		criteria: DefaultCriteria(),
		selected: map[string]struct{}{},
		now:      now,
	}
}

func (b *Board) Actor() workflow.Actor { return b.actor }
func (b *Board) Criteria() Criteria    { return b.criteria }
func (b *Board) BulkOpen() bool        { return b.bulkOpen }
func (b *Board) OpenBulk()             { b.bulkOpen = true }
func (b *Board) CloseBulk()            { b.bulkOpen = false }

// SetCriteria fills unset sort fields with the defaults.
func (b *Board) SetCriteria(c Criteria) {
	if !c.SortBy.Valid() {
		c.SortBy = SortApplicationDate
	}
	if !c.Direction.Valid() {
		c.Direction = Asc
	}
	b.criteria = c
}

func (b *Board) Queue() []application.Application { return Derive(b.apps, b.criteria) }

func (b *Board) Stats() Stats { return ComputeStats(b.apps, b.now()) }

// Applications returns a copy of the whole collection.
func (b *Board) Applications() []application.Application {
	out := make([]application.Application, len(b.apps))
	copy(out, b.apps)
	return out
}

func (b *Board) indexOf(id string) int {
	for i := range b.apps {
		if b.apps[i].ApplicationID == id {
			return i
		}
	}
	return -1
}

func (b *Board) Select(id string) error {
	if b.indexOf(id) < 0 {
		return fmt.Errorf("application %s: %w", id, application.ErrNotFound)
	}
	b.selected[id] = struct{}{}
	return nil
}

// SelectAll selects everything in the current queue.
func (b *Board) SelectAll() {
	for _, a := range b.Queue() {
		b.selected[a.ApplicationID] = struct{}{}
	}
}

func (b *Board) Deselect(id string) { delete(b.selected, id) }

func (b *Board) ClearSelection() { clear(b.selected) }

// Selected lists selected ids in collection order.
func (b *Board) Selected() []string {
	out := make([]string, 0, len(b.selected))
	for _, a := range b.apps {
		if _, ok := b.selected[a.ApplicationID]; ok {
			out = append(out, a.ApplicationID)
		}
	}
	return out
}

func (b *Board) Allocate(id string, in workflow.Allocation) (application.Application, error) {
	i := b.indexOf(id)
	if i < 0 {
		return application.Application{}, fmt.Errorf("application %s: %w", id, application.ErrNotFound)
	}
	next, err := workflow.Allocate(b.apps[i], b.actor, in, b.now())
	if err != nil {
		return application.Application{}, err
	}
	b.apps[i] = next
	delete(b.selected, id)
	return next, nil
}

// BulkAllocate allocates the selection at requested amounts. On success the
// selection is cleared and the bulk action closed; on failure nothing changes.
func (b *Board) BulkAllocate(fundSource string) ([]application.Application, error) {
	ids := b.Selected()
	next, err := workflow.BulkAllocate(b.apps, ids, b.actor, fundSource, b.now())
	if err != nil {
		return nil, err
	}
	b.apps = next

	changed := make([]application.Application, 0, len(ids))
	for _, a := range next {
		if _, ok := b.selected[a.ApplicationID]; ok {
			changed = append(changed, a)
		}
	}
	b.ClearSelection()
	b.CloseBulk()
	return changed, nil
}
