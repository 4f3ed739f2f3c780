package workflow

import (
	"fmt"
	"strings"
	"time"

	"ebursary-backend/internal/domain/application"

	"github.com/shopspring/decimal"
)

// All mutations take the application by value and return the updated copy.
// Preconditions are checked in this order: capability, transition table,
// input validation. Nothing is returned on failure except the untouched input.

// checked returns next when it satisfies the application invariants, and the
// untouched input otherwise.
func checked(prev, next application.Application) (application.Application, error) {
	if err := next.CheckInvariants(); err != nil {
		return prev, err
	}
	return next, nil
}

type Draft struct {
	ApplicationID   string
	InstitutionID   string
	InstitutionName string
	EducationLevel  string
	CourseOfStudy   string
	RequestedAmount decimal.Decimal
	FundCategory    string
}

// NewDraft builds a draft owned by the calling student.
func NewDraft(actor Actor, in Draft, now time.Time) (application.Application, error) {
	if actor.Role != RoleStudent {
		return application.Application{}, fmt.Errorf("%w: only students create applications", ErrForbidden)
	}
	switch {
	case in.ApplicationID == "":
		return application.Application{}, invalid("application_id", "is required")
	case strings.TrimSpace(in.InstitutionName) == "":
		return application.Application{}, invalid("institution_name", "is required")
	case strings.TrimSpace(in.EducationLevel) == "":
		return application.Application{}, invalid("education_level", "is required")
	case strings.TrimSpace(in.CourseOfStudy) == "":
		return application.Application{}, invalid("course_of_study", "is required")
	case !in.RequestedAmount.IsPositive():
		return application.Application{}, invalid("requested_amount", "must be greater than 0")
	}
	return application.Application{
		ApplicationID:   in.ApplicationID,
		StudentID:       actor.ID,
		StudentName:     actor.Name,
		InstitutionID:   strings.TrimSpace(in.InstitutionID),
		InstitutionName: strings.TrimSpace(in.InstitutionName),
		EducationLevel:  strings.TrimSpace(in.EducationLevel),
		CourseOfStudy:   strings.TrimSpace(in.CourseOfStudy),
		RequestedAmount: in.RequestedAmount,
		FundCategory:    strings.TrimSpace(in.FundCategory),
		Status:          application.StatusDraft,
		ApplicationDate: now,
		LastUpdated:     now,
	}, nil
}

// Submit moves the owner's draft to submitted.
func Submit(a application.Application, actor Actor, now time.Time) (application.Application, error) {
	if actor.ID == "" || actor.ID != a.StudentID {
		return a, fmt.Errorf("%w: only the owner can submit", ErrForbidden)
	}
	if a.Status != application.StatusDraft {
		return a, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.Status, application.StatusSubmitted)
	}
	out := a
	out.Status = application.StatusSubmitted
	out.ApplicationDate = now
	out.LastUpdated = now
	return out, nil
}

// CheckDiscard verifies the owner may physically delete a.
func CheckDiscard(a application.Application, actor Actor) error {
	if actor.ID == "" || actor.ID != a.StudentID {
		return fmt.Errorf("%w: only the owner can discard", ErrForbidden)
	}
	if a.Status != application.StatusDraft {
		return fmt.Errorf("%w: only drafts can be discarded", ErrIllegalTransition)
	}
	return nil
}

// Transition is the generic review/override move. Allocation and
// disbursement carry amounts and have their own operations.
func Transition(a application.Application, actor Actor, to application.Status, reason string, now time.Time) (application.Application, error) {
	if !to.Valid() {
		return a, invalid("status", "is not a known status")
	}
	caps := CapabilitiesFor(actor.Role)
	if !caps.CanReview || (to == application.StatusApproved && !caps.CanApprove) {
		return a, fmt.Errorf("%w: %s cannot move applications to %s", ErrForbidden, actor.Role, to)
	}
	if !CanTransition(actor.Role, a.Status, to) {
		return a, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.Status, to)
	}
	if to == application.StatusAllocated || to == application.StatusDisbursed {
		return a, fmt.Errorf("%w: %s requires the dedicated operation", ErrIllegalTransition, to)
	}
	reason = strings.TrimSpace(reason)
	if to == application.StatusRejected && reason == "" {
		return a, invalid("reason", "is required when rejecting")
	}

	out := a
	out.Status = to
	out.LastUpdated = now
	if to.BeforeAllocation() {
		out.ClearAllocation()
	}
	if to == application.StatusRejected {
		out.RejectionReason = reason
	} else {
		out.RejectionReason = ""
	}
	return checked(a, out)
}

type Allocation struct {
	Amount     decimal.Decimal
	FundSource string
	// Override allows an amount above the requested amount (superadmin only).
	Override bool
}

func allocatable(s application.Status) bool {
	return s == application.StatusApproved || s == application.StatusPendingAllocation
}

// Allocate commits in.Amount from in.FundSource to a.
func Allocate(a application.Application, actor Actor, in Allocation, now time.Time) (application.Application, error) {
	if !CapabilitiesFor(actor.Role).CanAllocate {
		return a, fmt.Errorf("%w: %s cannot allocate", ErrForbidden, actor.Role)
	}
	if !allocatable(a.Status) || !CanTransition(actor.Role, a.Status, application.StatusAllocated) {
		return a, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.Status, application.StatusAllocated)
	}
	fund := strings.TrimSpace(in.FundSource)
	if fund == "" {
		return a, invalid("fund_source", "is required")
	}
	if !in.Amount.IsPositive() {
		return a, invalid("amount", "must be greater than 0")
	}
	if in.Amount.GreaterThan(a.RequestedAmount) {
		if !in.Override {
			return a, invalid("amount", "must not exceed the requested amount")
		}
		if actor.Role != RoleSuperAdmin {
			return a, fmt.Errorf("%w: only superadmin can override the requested amount", ErrForbidden)
		}
	}

	at := now
	out := a
	out.Status = application.StatusAllocated
	out.AllocatedAmount = decimal.NewNullDecimal(in.Amount)
	out.ApprovedAmount = decimal.NewNullDecimal(in.Amount)
	out.AllocationDate = &at
	out.AllocatedBy = actor.Stamp()
	out.FundCategory = fund
	out.RejectionReason = ""
	out.LastUpdated = now
	return checked(a, out)
}

// BulkAllocate allocates every application whose id is in ids at its own
// requested amount. Either all of them pass or none is changed; the returned
// slice is a new collection in the order of apps.
func BulkAllocate(apps []application.Application, ids []string, actor Actor, fundSource string, now time.Time) ([]application.Application, error) {
	if !CapabilitiesFor(actor.Role).CanAllocate {
		return nil, fmt.Errorf("%w: %s cannot allocate", ErrForbidden, actor.Role)
	}
	if len(ids) == 0 {
		return nil, invalid("application_ids", "must not be empty")
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]application.Application, len(apps))
	copy(out, apps)
	seen := make(map[string]struct{}, len(want))
	for i := range out {
		id := out[i].ApplicationID
		if _, ok := want[id]; !ok {
			continue
		}
		next, err := Allocate(out[i], actor, Allocation{Amount: out[i].RequestedAmount, FundSource: fundSource}, now)
		if err != nil {
			return nil, fmt.Errorf("application %s: %w", id, err)
		}
		out[i] = next
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			return nil, fmt.Errorf("application %s: %w", id, application.ErrNotFound)
		}
	}
	return out, nil
}

// Disburse releases funds for an allocated application. A null amount means
// the full allocated amount.
func Disburse(a application.Application, actor Actor, amount decimal.NullDecimal, now time.Time) (application.Application, error) {
	if !CapabilitiesFor(actor.Role).CanDisburse {
		return a, fmt.Errorf("%w: %s cannot disburse", ErrForbidden, actor.Role)
	}
	if a.Status != application.StatusAllocated || !CanTransition(actor.Role, a.Status, application.StatusDisbursed) {
		return a, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.Status, application.StatusDisbursed)
	}
	value := a.AllocatedAmount.Decimal
	if amount.Valid {
		value = amount.Decimal
	}
	if !value.IsPositive() {
		return a, invalid("amount", "must be greater than 0")
	}
	if value.GreaterThan(a.AllocatedAmount.Decimal) {
		return a, invalid("amount", "must not exceed the allocated amount")
	}

	at := now
	out := a
	out.Status = application.StatusDisbursed
	out.DisbursedAmount = decimal.NewNullDecimal(value)
	out.DisbursementDate = &at
	out.DisbursedBy = actor.Stamp()
	out.LastUpdated = now
	return checked(a, out)
}
