package application

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Stage is a lifecycle view of an Application. Exactly one of the concrete
// types below is returned by (*Application).Stage, so callers switch on the
// type instead of reading optional columns.
type Stage interface {
	Status() Status
	stage()
}

// Open covers every status ahead of allocation.
type Open struct{ status Status }

type Allocated struct {
	Amount decimal.Decimal
	By     string
	At     time.Time
}

type Disbursed struct {
	Allocation Allocated
	Amount     decimal.Decimal
	By         string
	At         time.Time
}

type Rejected struct {
	Reason string
	// Allocation is set when the application was rejected after allocation.
	Allocation *Allocated
}

func (o Open) Status() Status    { return o.status }
func (Allocated) Status() Status { return StatusAllocated }
func (Disbursed) Status() Status { return StatusDisbursed }
func (Rejected) Status() Status  { return StatusRejected }

func (Open) stage()      {}
func (Allocated) stage() {}
func (Disbursed) stage() {}
func (Rejected) stage()  {}

// Stage returns the lifecycle view. It assumes CheckInvariants holds.
func (a *Application) Stage() Stage {
	switch a.Status {
	case StatusAllocated:
		return a.allocation()
	case StatusDisbursed:
		return Disbursed{
			Allocation: a.allocation(),
			Amount:     a.DisbursedAmount.Decimal,
			By:         a.DisbursedBy,
			At:         derefTime(a.DisbursementDate),
		}
	case StatusRejected:
		r := Rejected{Reason: a.RejectionReason}
		if a.AllocatedAmount.Valid {
			al := a.allocation()
			r.Allocation = &al
		}
		return r
	default:
		return Open{status: a.Status}
	}
}

func (a *Application) allocation() Allocated {
	return Allocated{Amount: a.AllocatedAmount.Decimal, By: a.AllocatedBy, At: derefTime(a.AllocationDate)}
}

// CheckInvariants verifies that the optional columns match the status.
func (a *Application) CheckInvariants() error {
	if !a.Status.Valid() {
		return fmt.Errorf("unknown status %q", a.Status)
	}
	if !a.RequestedAmount.IsPositive() {
		return fmt.Errorf("requested amount must be positive")
	}
	hasAlloc := a.AllocatedAmount.Valid || a.AllocationDate != nil || a.AllocatedBy != ""
	hasDisb := a.DisbursedAmount.Valid || a.DisbursementDate != nil || a.DisbursedBy != ""
	fullAlloc := a.AllocatedAmount.Valid && a.AllocationDate != nil && a.AllocatedBy != ""
	fullDisb := a.DisbursedAmount.Valid && a.DisbursementDate != nil && a.DisbursedBy != ""

	switch {
	case a.Status.BeforeAllocation():
		if hasAlloc || hasDisb {
			return fmt.Errorf("status %s must not carry allocation or disbursement", a.Status)
		}
	case a.Status == StatusAllocated:
		if !fullAlloc {
			return fmt.Errorf("allocated application is missing allocation details")
		}
		if hasDisb {
			return fmt.Errorf("allocated application must not carry disbursement")
		}
	case a.Status == StatusDisbursed:
		if !fullAlloc || !fullDisb {
			return fmt.Errorf("disbursed application is missing allocation or disbursement details")
		}
	}
	if a.AllocatedAmount.Valid && !a.AllocatedAmount.Decimal.Equal(a.ApprovedAmount.Decimal) {
		return fmt.Errorf("approved amount must match allocated amount")
	}
	return nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
