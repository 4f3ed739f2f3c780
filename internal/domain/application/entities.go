package application

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("application not found")
)

type Status string

const (
	StatusDraft             Status = "draft"
	StatusSubmitted         Status = "submitted"
	StatusUnderReview       Status = "under-review"
	StatusCorrectionsNeeded Status = "corrections-needed"
	StatusApproved          Status = "approved"
	StatusPendingAllocation Status = "pending-allocation"
	StatusAllocated         Status = "allocated"
	StatusDisbursed         Status = "disbursed"
	StatusRejected          Status = "rejected"
)

// lifecycle order
var statuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusCorrectionsNeeded,
	StatusApproved,
	StatusPendingAllocation,
	StatusAllocated,
	StatusDisbursed,
	StatusRejected,
}

// AllStatuses returns the full status enumeration in lifecycle order.
// The returned slice is a copy.
func AllStatuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// Rank is the position of s in the lifecycle, or -1 for an unknown status.
func (s Status) Rank() int {
	for i, v := range statuses {
		if v == s {
			return i
		}
	}
	return -1
}

func (s Status) Valid() bool { return s.Rank() >= 0 }

// BeforeAllocation reports whether s sits on the success path ahead of allocation.
func (s Status) BeforeAllocation() bool {
	r := s.Rank()
	return r >= 0 && r < StatusAllocated.Rank()
}

// Table: applications
type Application struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApplicationID string `gorm:"column:application_id;size:32;uniqueIndex:ux_applications_application_id" json:"application_id"`

	StudentID       string `gorm:"column:student_id;size:32;index:idx_applications_student" json:"student_id"`
	StudentName     string `gorm:"column:student_name;size:255" json:"student_name"`
	InstitutionID   string `gorm:"column:institution_id;size:64" json:"institution_id"`
	InstitutionName string `gorm:"column:institution_name;size:255" json:"institution_name"`
	EducationLevel  string `gorm:"column:education_level;size:64" json:"education_level"`
	CourseOfStudy   string `gorm:"column:course_of_study;size:255" json:"course_of_study"`

	RequestedAmount decimal.Decimal     `gorm:"column:requested_amount;type:decimal(18,2)" json:"requested_amount"`
	AllocatedAmount decimal.NullDecimal `gorm:"column:allocated_amount;type:decimal(18,2)" json:"allocated_amount"`
	ApprovedAmount  decimal.NullDecimal `gorm:"column:approved_amount;type:decimal(18,2)" json:"approved_amount"`
	DisbursedAmount decimal.NullDecimal `gorm:"column:disbursed_amount;type:decimal(18,2)" json:"disbursed_amount"`
	FundCategory    string              `gorm:"column:fund_category;size:128" json:"fund_category,omitempty"`

	Status           Status     `gorm:"column:status;size:32;index:idx_applications_status;default:'draft'" json:"status"`
	ApplicationDate  time.Time  `gorm:"column:application_date" json:"application_date"`
	AllocationDate   *time.Time `gorm:"column:allocation_date;index:idx_applications_allocation_date" json:"allocation_date,omitempty"`
	AllocatedBy      string     `gorm:"column:allocated_by;size:255" json:"allocated_by,omitempty"`
	DisbursementDate *time.Time `gorm:"column:disbursement_date" json:"disbursement_date,omitempty"`
	DisbursedBy      string     `gorm:"column:disbursed_by;size:255" json:"disbursed_by,omitempty"`
	RejectionReason  string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	LastUpdated      time.Time  `gorm:"column:last_updated" json:"last_updated"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

// ClearAllocation drops allocation and disbursement stamps.
func (a *Application) ClearAllocation() {
	a.AllocatedAmount = decimal.NullDecimal{}
	a.ApprovedAmount = decimal.NullDecimal{}
	a.AllocationDate = nil
	a.AllocatedBy = ""
	a.ClearDisbursement()
}

func (a *Application) ClearDisbursement() {
	a.DisbursedAmount = decimal.NullDecimal{}
	a.DisbursementDate = nil
	a.DisbursedBy = ""
}
