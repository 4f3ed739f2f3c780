package workflow

import "strings"

type Role string

const (
	RoleStudent    Role = "student"
	RoleARO        Role = "aro"
	RoleFAO        Role = "fao"
	RoleFDO        Role = "fdo"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole normalises s. Unknown values are returned as-is and get no capabilities.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

func (r Role) Known() bool {
	switch r {
	case RoleStudent, RoleARO, RoleFAO, RoleFDO, RoleSuperAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Name string
	Role Role
}

// Stamp is what allocation and disbursement record as the acting officer:
// the display name, or the id when no name is known.
func (a Actor) Stamp() string {
	if n := strings.TrimSpace(a.Name); n != "" {
		return n
	}
	return a.ID
}

type Capabilities struct {
	CanReview               bool `json:"can_review"`
	CanAllocate             bool `json:"can_allocate"`
	CanDisburse             bool `json:"can_disburse"`
	CanApprove              bool `json:"can_approve"`
	CanSubmitToNextStage    bool `json:"can_submit_to_next_stage"`
	CanEditAllocationAmount bool `json:"can_edit_allocation_amount"`
}

// CapabilitiesFor derives the capability set of r. It is recomputed on every
// call; unknown roles get the zero value.
func CapabilitiesFor(r Role) Capabilities {
	switch r {
	case RoleARO:
		return Capabilities{CanReview: true, CanApprove: true, CanSubmitToNextStage: true}
	case RoleFAO:
		return Capabilities{CanReview: true, CanAllocate: true, CanEditAllocationAmount: true}
	case RoleFDO:
		return Capabilities{CanReview: true, CanDisburse: true}
	case RoleSuperAdmin:
		return Capabilities{
			CanReview:               true,
			CanAllocate:             true,
			CanDisburse:             true,
			CanApprove:              true,
			CanSubmitToNextStage:    true,
			CanEditAllocationAmount: true,
		}
	default:
		return Capabilities{}
	}
}
