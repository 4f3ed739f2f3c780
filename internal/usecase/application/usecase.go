package application

import (
	"context"
	"fmt"
	"time"

	appDomain "ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/history"
	"ebursary-backend/internal/domain/uow"
	"ebursary-backend/internal/domain/workflow"
	"ebursary-backend/internal/infrastructure/metrics"
	"ebursary-backend/pkg/id"

	"go.uber.org/zap"
)

// Usecase covers the student side of an application plus the read paths
// shared with staff.
type Usecase struct {
	apps    appDomain.Repository
	history history.Repository
	uow     uow.UnitOfWork
	log     *zap.Logger
	now     func() time.Time
}

func NewUsecase(apps appDomain.Repository, hist history.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{apps: apps, history: hist, uow: tx, log: log, now: time.Now}
}

// WithClock replaces the time source (tests).
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Create(ctx context.Context, actor workflow.Actor, in CreateInput) (*appDomain.Application, error) {
	a, err := workflow.NewDraft(actor, workflow.Draft{
		ApplicationID:   id.NewID32(),
		InstitutionID:   in.InstitutionID,
		InstitutionName: in.InstitutionName,
		EducationLevel:  in.EducationLevel,
		CourseOfStudy:   in.CourseOfStudy,
		RequestedAmount: in.RequestedAmount,
		FundCategory:    in.FundCategory,
	}, u.now().UTC())
	if err != nil {
		return nil, u.refused("create", actor, "", err)
	}
	if err := u.apps.Create(ctx, &a); err != nil {
		return nil, err
	}
	u.log.Info("application drafted",
		zap.String("application_id", a.ApplicationID),
		zap.String("student_id", a.StudentID),
		zap.String("requested_amount", a.RequestedAmount.String()))
	return &a, nil
}

func (u *Usecase) Submit(ctx context.Context, actor workflow.Actor, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		now := u.now().UTC()
		next, err := workflow.Submit(*a, actor, now)
		if err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, &next); err != nil {
			return err
		}
		if err := r.History.Create(ctx, history.Record(a.Status, &next, actor, "", now)); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, u.refused("submit", actor, applicationID, err)
	}
	metrics.TransitionsTotal.WithLabelValues(string(out.Status), string(actor.Role)).Inc()
	u.log.Info("application submitted", zap.String("application_id", applicationID), zap.String("actor_id", actor.ID))
	return &out, nil
}

// Discard physically removes the owner's draft.
func (u *Usecase) Discard(ctx context.Context, actor workflow.Actor, applicationID string) error {
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if err := workflow.CheckDiscard(*a, actor); err != nil {
			return err
		}
		return r.Applications.Delete(ctx, a)
	})
	if err != nil {
		return u.refused("discard", actor, applicationID, err)
	}
	u.log.Info("draft discarded", zap.String("application_id", applicationID), zap.String("actor_id", actor.ID))
	return nil
}

// Get returns the application to its owner or to any reviewing role.
func (u *Usecase) Get(ctx context.Context, actor workflow.Actor, applicationID string) (*appDomain.Application, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.StudentID != actor.ID && !workflow.CapabilitiesFor(actor.Role).CanReview {
		return nil, fmt.Errorf("%w: not the owner", workflow.ErrForbidden)
	}
	return a, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor workflow.Actor) ([]appDomain.Application, error) {
	out, err := u.apps.ListByStudentID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []appDomain.Application{}
	}
	return out, nil
}

func (u *Usecase) History(ctx context.Context, actor workflow.Actor, applicationID string) ([]history.Entry, error) {
	a, err := u.Get(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	out, err := u.history.ListByApplicationID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []history.Entry{}
	}
	return out, nil
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

// Transitions lists the statuses actor can move the application into.
func (u *Usecase) Transitions(ctx context.Context, actor workflow.Actor, applicationID string) ([]appDomain.Status, error) {
	a, err := u.Get(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	return workflow.Reachable(actor.Role, a.Status), nil
}
