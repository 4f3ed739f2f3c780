package queue

import (
	"cmp"
	"slices"
	"strings"

	"ebursary-backend/internal/domain/application"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortApplicationDate SortKey = "applicationDate"
	SortRequestedAmount SortKey = "requestedAmount"
	SortStudentName     SortKey = "studentName"
	SortInstitutionName SortKey = "institutionName"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortApplicationDate, SortRequestedAmount, SortStudentName, SortInstitutionName:
		return true
	}
	return false
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) Valid() bool { return d == Asc || d == Desc }

// Criteria narrows and orders the allocation queue. Nil filters match everything.
type Criteria struct {
	Search         string
	Institution    *string
	EducationLevel *string
	FundCategory   *string
	SortBy         SortKey
	Direction      Direction
}

// Filter turns a UI filter value into a criterion: "" and "all" match everything.
func Filter(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "all") {
		return nil
	}
	return &v
}

// DefaultCriteria is oldest application first, no filters.
func DefaultCriteria() Criteria {
	return Criteria{SortBy: SortApplicationDate, Direction: Asc}
}

// Eligible reports whether a belongs to the allocation base set.
func Eligible(a application.Application) bool {
	return a.Status == application.StatusPendingAllocation || a.Status == application.StatusApproved
}

// Derive returns the filtered, sorted queue as a new slice. apps is not modified.
func Derive(apps []application.Application, c Criteria) []application.Application {
	q := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]application.Application, 0, len(apps))
	for _, a := range apps {
		if !Eligible(a) || !matchesSearch(a, q) {
			continue
		}
		if c.Institution != nil && a.InstitutionName != *c.Institution && a.InstitutionID != *c.Institution {
			continue
		}
		if c.EducationLevel != nil && a.EducationLevel != *c.EducationLevel {
			continue
		}
		if c.FundCategory != nil && a.FundCategory != *c.FundCategory {
			continue
		}
		out = append(out, a)
	}

	cmpFn := comparator(c.SortBy)
	if c.Direction == Desc {
		slices.SortStableFunc(out, func(x, y application.Application) int { return cmpFn(y, x) })
	} else {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

func matchesSearch(a application.Application, q string) bool {
	if q == "" {
		return true
	}
	for _, f := range []string{a.StudentName, a.InstitutionName, a.ApplicationID, a.CourseOfStudy} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func comparator(k SortKey) func(x, y application.Application) int {
	switch k {
	case SortRequestedAmount:
		return func(x, y application.Application) int { return x.RequestedAmount.Cmp(y.RequestedAmount) }
	case SortStudentName, SortInstitutionName:
		// a Collator keeps internal buffers, so each derivation gets its own
		col := collate.New(language.English, collate.IgnoreCase)
		if k == SortStudentName {
			return func(x, y application.Application) int { return col.CompareString(x.StudentName, y.StudentName) }
		}
		return func(x, y application.Application) int { return col.CompareString(x.InstitutionName, y.InstitutionName) }
	default:
		return func(x, y application.Application) int { return cmp.Compare(x.ApplicationDate.UnixNano(), y.ApplicationDate.UnixNano()) }
	}
}
