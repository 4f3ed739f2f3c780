package application

import (
	"context"
	"errors"
	"testing"
	"time"

	appDomain "ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/uow"
	"ebursary-backend/internal/domain/workflow"
	"ebursary-backend/internal/testutil/applicationmock"
	"ebursary-backend/internal/testutil/historymock"
	"ebursary-backend/internal/testutil/uowmock"
	"ebursary-backend/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	fixed   = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	student = workflow.Actor{ID: "stu-1", Name: "Wanjiru", Role: workflow.RoleStudent}
	other   = workflow.Actor{ID: "stu-2", Name: "Otieno", Role: workflow.RoleStudent}
	aro     = workflow.Actor{ID: "aro-1", Name: "Alice", Role: workflow.RoleARO}
)

type fixture struct {
	store *applicationmock.Store
	hist  *historymock.Repo
	uc    *Usecase
}

func newFixture(apps ...appDomain.Application) *fixture {
	store := applicationmock.NewStore(apps...)
	repo := store.Repo()
	hist := &historymock.Repo{}
	tx := uowmock.Passthrough(uow.Repos{Applications: repo, History: hist})
	uc := NewUsecase(repo, hist, tx, zap.NewNop()).WithClock(func() time.Time { return fixed })
	return &fixture{store: store, hist: hist, uc: uc}
}

func validInput() CreateInput {
	return CreateInput{
		InstitutionID:   "inst-9",
		InstitutionName: "Kenyatta University",
		EducationLevel:  "university",
		CourseOfStudy:   "Nursing",
		RequestedAmount: decimal.NewFromInt(45000),
	}
}

func TestCreate_DraftOwnedByStudent(t *testing.T) {
	f := newFixture()
	a, err := f.uc.Create(context.Background(), student, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !id.IsID32(a.ApplicationID) {
		t.Fatalf("application id %q is not a 32-char hex id", a.ApplicationID)
	}
	if a.Status != appDomain.StatusDraft || a.StudentID != "stu-1" || a.StudentName != "Wanjiru" {
		t.Fatalf("unexpected draft: %+v", a)
	}
	if _, ok := f.store.Get(a.ApplicationID); !ok {
		t.Fatalf("draft not stored")
	}
	if len(f.hist.Created) != 0 {
		t.Fatalf("drafting must not write history")
	}
}

func TestCreate_Refusals(t *testing.T) {
	f := newFixture()
	if _, err := f.uc.Create(context.Background(), aro, validInput()); !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("aro create: want forbidden, got %v", err)
	}
	in := validInput()
	in.RequestedAmount = decimal.Zero
	if _, err := f.uc.Create(context.Background(), student, in); !workflow.IsValidation(err) {
		t.Fatalf("zero amount: want validation, got %v", err)
	}
}

func TestSubmit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, err := f.uc.Create(ctx, student, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.uc.Submit(ctx, other, a.ApplicationID); !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("non-owner submit: want forbidden, got %v", err)
	}
	out, err := f.uc.Submit(ctx, student, a.ApplicationID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != appDomain.StatusSubmitted {
		t.Fatalf("status = %s", out.Status)
	}
	if len(f.hist.Created) != 1 || f.hist.Created[0].FromStatus != appDomain.StatusDraft {
		t.Fatalf("history: %+v", f.hist.Created)
	}
	if _, err := f.uc.Submit(ctx, student, a.ApplicationID); !errors.Is(err, workflow.ErrIllegalTransition) {
		t.Fatalf("double submit: want illegal, got %v", err)
	}
}

func TestDiscard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.uc.Create(ctx, student, validInput())

	if err := f.uc.Discard(ctx, other, a.ApplicationID); !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("non-owner discard: want forbidden, got %v", err)
	}
	if err := f.uc.Discard(ctx, student, a.ApplicationID); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if _, ok := f.store.Get(a.ApplicationID); ok {
		t.Fatalf("draft still stored after discard")
	}
	if err := f.uc.Discard(ctx, student, a.ApplicationID); !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("second discard: want not found, got %v", err)
	}

	b, _ := f.uc.Create(ctx, student, validInput())
	if _, err := f.uc.Submit(ctx, student, b.ApplicationID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := f.uc.Discard(ctx, student, b.ApplicationID); !errors.Is(err, workflow.ErrIllegalTransition) {
		t.Fatalf("discard submitted: want illegal, got %v", err)
	}
}

func TestGet_Visibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.uc.Create(ctx, student, validInput())

	if _, err := f.uc.Get(ctx, student, a.ApplicationID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := f.uc.Get(ctx, aro, a.ApplicationID); err != nil {
		t.Fatalf("reviewer get: %v", err)
	}
	if _, err := f.uc.Get(ctx, other, a.ApplicationID); !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("other student: want forbidden, got %v", err)
	}
	if _, err := f.uc.Get(ctx, aro, "missing"); !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("missing: want not found, got %v", err)
	}
}

func TestListMine_NeverNil(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	got, err := f.uc.ListMine(ctx, student)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}

	f.uc.Create(ctx, student, validInput())
	f.uc.Create(ctx, other, validInput())
	got, _ = f.uc.ListMine(ctx, student)
	if len(got) != 1 || got[0].StudentID != "stu-1" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestHistoryAndTransitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.uc.Create(ctx, student, validInput())

	h, err := f.uc.History(ctx, student, a.ApplicationID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if h == nil || len(h) != 0 {
		t.Fatalf("want empty non-nil history, got %#v", h)
	}

	if _, err := f.uc.Submit(ctx, student, a.ApplicationID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	h, _ = f.uc.History(ctx, aro, a.ApplicationID)
	if len(h) != 1 || h[0].ToStatus != appDomain.StatusSubmitted || h[0].ActorRole != "student" {
		t.Fatalf("unexpected history: %+v", h)
	}

	next, err := f.uc.Transitions(ctx, aro, a.ApplicationID)
	if err != nil {
		t.Fatalf("Transitions: %v", err)
	}
	if len(next) != 4 || next[0] != appDomain.StatusUnderReview {
		t.Fatalf("aro transitions from submitted: %v", next)
	}
	next, _ = f.uc.Transitions(ctx, student, a.ApplicationID)
	if len(next) != 0 {
		t.Fatalf("student transitions: %v", next)
	}
	if _, err := f.uc.History(ctx, other, a.ApplicationID); !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("other student history: want forbidden, got %v", err)
	}
}

func TestTransitions_SuperadminMatchesOperations(t *testing.T) {
	admin := workflow.Actor{ID: "sa-1", Name: "Root", Role: workflow.RoleSuperAdmin}
	f := newFixture(appDomain.Application{
		ApplicationID:   "0123456789abcdef0123456789abcdef",
		StudentID:       student.ID,
		StudentName:     student.Name,
		InstitutionName: "Moi University",
		RequestedAmount: decimal.NewFromInt(500),
		Status:          appDomain.StatusUnderReview,
		ApplicationDate: fixed,
	})
	next, err := f.uc.Transitions(context.Background(), admin, "0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("Transitions: %v", err)
	}
	for _, s := range next {
		if s == appDomain.StatusAllocated || s == appDomain.StatusDisbursed {
			t.Fatalf("superadmin from under-review advertises %s: %v", s, next)
		}
	}
	if len(next) == 0 {
		t.Fatalf("superadmin transitions from under-review are empty")
	}
}
