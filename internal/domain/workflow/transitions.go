package workflow

import "ebursary-backend/internal/domain/application"

var transitionTable = map[Role]map[application.Status][]application.Status{
	RoleARO: {
		application.StatusSubmitted: {
			application.StatusUnderReview,
			application.StatusCorrectionsNeeded,
			application.StatusApproved,
			application.StatusRejected,
		},
		application.StatusUnderReview: {
			application.StatusCorrectionsNeeded,
			application.StatusApproved,
			application.StatusRejected,
		},
		application.StatusCorrectionsNeeded: {
			application.StatusUnderReview,
			application.StatusApproved,
			application.StatusRejected,
		},
	},
	RoleFAO: {
		application.StatusApproved:          {application.StatusAllocated, application.StatusRejected},
		application.StatusPendingAllocation: {application.StatusAllocated, application.StatusRejected},
	},
	RoleFDO: {
		application.StatusAllocated: {application.StatusDisbursed, application.StatusRejected},
	},
}

// AllowedTransitions returns the statuses r may move an application into from
// the given status. The result is a fresh slice; empty means nothing is allowed.
// Superadmin may target any status from any status.
func AllowedTransitions(r Role, from application.Status) []application.Status {
	if r == RoleSuperAdmin {
		return application.AllStatuses()
	}
	next := transitionTable[r][from]
	out := make([]application.Status, len(next))
	copy(out, next)
	return out
}

func CanTransition(r Role, from, to application.Status) bool {
	for _, s := range AllowedTransitions(r, from) {
		if s == to {
			return true
		}
	}
	return false
}

// Reachable is AllowedTransitions narrowed to the moves an operation will
// actually perform: allocated only from approved or pending-allocation, and
// disbursed only from allocated. It matters for superadmin, whose table
// entry lists every status.
func Reachable(r Role, from application.Status) []application.Status {
	next := AllowedTransitions(r, from)
	out := next[:0]
	for _, s := range next {
		switch {
		case s == application.StatusAllocated && !allocatable(from):
		case s == application.StatusDisbursed && from != application.StatusAllocated:
		default:
			out = append(out, s)
		}
	}
	return out
}
