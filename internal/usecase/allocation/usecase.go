package allocation

import (
	"context"
	"fmt"
	"time"

	appDomain "ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/history"
	"ebursary-backend/internal/domain/queue"
	"ebursary-backend/internal/domain/uow"
	"ebursary-backend/internal/domain/workflow"
	"ebursary-backend/internal/infrastructure/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Usecase runs the staff side of the workflow: review transitions, the
// allocation queue, single and bulk allocation, and disbursement.
type Usecase struct {
	apps appDomain.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
	loc  *time.Location
	now  func() time.Time
}

// NewUsecase: loc is the zone "allocated today" is measured in.
func NewUsecase(apps appDomain.Repository, tx uow.UnitOfWork, loc *time.Location, log *zap.Logger) *Usecase {
	if loc == nil {
		loc = time.UTC
	}
	return &Usecase{apps: apps, uow: tx, log: log, loc: loc, now: time.Now}
}

// WithClock replaces the time source (tests).
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) clock() time.Time { return u.now().In(u.loc) }

func (u *Usecase) Queue(ctx context.Context, actor workflow.Actor, c queue.Criteria) (*QueueResult, error) {
	if !workflow.CapabilitiesFor(actor.Role).CanAllocate {
		return nil, fmt.Errorf("%w: %s cannot view the allocation queue", workflow.ErrForbidden, actor.Role)
	}
	now := u.clock()
	apps, err := u.apps.ListQueueCandidates(ctx, queue.StartOfDay(now))
	if err != nil {
		return nil, err
	}
	board := queue.NewBoard(actor, apps, func() time.Time { return now })
	board.SetCriteria(c)
	return &QueueResult{Items: board.Queue(), Stats: board.Stats()}, nil
}

// mutate locks the application, applies fn and records the status change.
func (u *Usecase) mutate(ctx context.Context, op string, actor workflow.Actor, applicationID, reason string,
	fn func(a appDomain.Application, now time.Time) (appDomain.Application, error)) (*appDomain.Application, error) {
	var out appDomain.Application
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		now := u.clock()
		next, err := fn(*a, now)
		if err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, &next); err != nil {
			return err
		}
		if err := r.History.Create(ctx, history.Record(a.Status, &next, actor, reason, now)); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, u.refused(op, actor, applicationID, err)
	}
	metrics.TransitionsTotal.WithLabelValues(string(out.Status), string(actor.Role)).Inc()
	return &out, nil
}

// Transition is the generic review move; allocation and disbursement go
// through their own methods.
func (u *Usecase) Transition(ctx context.Context, actor workflow.Actor, applicationID string, to appDomain.Status, reason string) (*appDomain.Application, error) {
	out, err := u.mutate(ctx, "transition", actor, applicationID, reason,
		func(a appDomain.Application, now time.Time) (appDomain.Application, error) {
			return workflow.Transition(a, actor, to, reason, now)
		})
	if err != nil {
		return nil, err
	}
	u.log.Info("application transitioned",
		zap.String("application_id", applicationID),
		zap.String("to", string(to)),
		zap.String("actor_id", actor.ID),
		zap.String("role", string(actor.Role)))
	return out, nil
}

func (u *Usecase) Allocate(ctx context.Context, actor workflow.Actor, applicationID string, in AllocateInput) (*appDomain.Application, error) {
	out, err := u.mutate(ctx, "allocate", actor, applicationID, "",
		func(a appDomain.Application, now time.Time) (appDomain.Application, error) {
			return workflow.Allocate(a, actor, workflow.Allocation{
				Amount:     in.Amount,
				FundSource: in.FundSource,
				Override:   in.Override,
			}, now)
		})
	if err != nil {
		return nil, err
	}
	metrics.AllocatedAmount.Add(out.AllocatedAmount.Decimal.InexactFloat64())
	u.log.Info("application allocated",
		zap.String("application_id", applicationID),
		zap.String("amount", out.AllocatedAmount.Decimal.String()),
		zap.String("fund_source", out.FundCategory),
		zap.Bool("override", in.Override),
		zap.String("actor_id", actor.ID))
	return out, nil
}

func (u *Usecase) Disburse(ctx context.Context, actor workflow.Actor, applicationID string, amount decimal.NullDecimal) (*appDomain.Application, error) {
	out, err := u.mutate(ctx, "disburse", actor, applicationID, "",
		func(a appDomain.Application, now time.Time) (appDomain.Application, error) {
			return workflow.Disburse(a, actor, amount, now)
		})
	if err != nil {
		return nil, err
	}
	metrics.DisbursedAmount.Add(out.DisbursedAmount.Decimal.InexactFloat64())
	u.log.Info("application disbursed",
		zap.String("application_id", applicationID),
		zap.String("amount", out.DisbursedAmount.Decimal.String()),
		zap.String("actor_id", actor.ID))
	return out, nil
}

// BulkAllocate allocates every listed application at its requested amount in
// one transaction. Any refusal rolls the whole batch back.
func (u *Usecase) BulkAllocate(ctx context.Context, actor workflow.Actor, in BulkInput) ([]appDomain.Application, error) {
	if !workflow.CapabilitiesFor(actor.Role).CanAllocate {
		return nil, u.refused("bulk_allocate", actor, "", fmt.Errorf("%w: %s cannot allocate", workflow.ErrForbidden, actor.Role))
	}
	ids := dedupe(in.ApplicationIDs)
	var out []appDomain.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		locked, err := r.Applications.ListByApplicationIDsForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		now := u.clock()
		board := queue.NewBoard(actor, locked, func() time.Time { return now })
		for _, applicationID := range ids {
			if err := board.Select(applicationID); err != nil {
				return err
			}
		}
		board.OpenBulk()
		changed, err := board.BulkAllocate(in.FundSource)
		if err != nil {
			return err
		}

		before := make(map[string]appDomain.Status, len(locked))
		for _, a := range locked {
			before[a.ApplicationID] = a.Status
		}
		for i := range changed {
			a := &changed[i]
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}
			if err := r.History.Create(ctx, history.Record(before[a.ApplicationID], a, actor, "", now)); err != nil {
				return err
			}
		}
		out = changed
		return nil
	})
	if err != nil {
		return nil, u.refused("bulk_allocate", actor, "", err)
	}

	total := decimal.Zero
	for _, a := range out {
		total = total.Add(a.AllocatedAmount.Decimal)
		metrics.TransitionsTotal.WithLabelValues(string(a.Status), string(actor.Role)).Inc()
	}
	metrics.AllocatedAmount.Add(total.InexactFloat64())
	metrics.BulkAllocationSize.Observe(float64(len(out)))
	u.log.Info("bulk allocation committed",
		zap.Int("count", len(out)),
		zap.String("total", total.String()),
		zap.String("fund_source", in.FundSource),
		zap.String("actor_id", actor.ID))
	return out, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, s := range ids {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (u *Usecase) refused(op string, actor workflow.Actor, applicationID string, err error) error {
	if kind := workflow.Kind(err); kind != "" {
		metrics.MutationsRefused.WithLabelValues(op, kind).Inc()
		u.log.Info("mutation refused",
			zap.String("operation", op),
			zap.String("application_id", applicationID),
			zap.String("actor_id", actor.ID),
			zap.String("role", string(actor.Role)),
			zap.String("kind", kind),
			zap.Error(err))
		return err
	}
	u.log.Error("mutation failed", zap.String("operation", op), zap.String("application_id", applicationID), zap.Error(err))
	return err
}
