package applicationmock

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "ebursary-backend/internal/domain/application"
)

// Store is an in-memory table behind a Repo, for usecase and handler tests.
type Store struct {
	mu   sync.Mutex
	rows map[string]domain.Application
	seq  uint64
}

func NewStore(seed ...domain.Application) *Store {
	s := &Store{rows: map[string]domain.Application{}}
	for _, a := range seed {
		s.seq++
		if a.ID == 0 {
			a.ID = s.seq
		}
		s.rows[a.ApplicationID] = a
	}
	return s
}

func (s *Store) Get(applicationID string) (domain.Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[applicationID]
	return a, ok
}

func (s *Store) get(_ context.Context, applicationID string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[applicationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *Store) list(keep func(domain.Application) bool) []domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Application
	for _, a := range s.rows {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Repo returns a mock wired to the store. Individual Fns may be overridden.
func (s *Store) Repo() *Repo {
	return &Repo{
		CreateFn: func(_ context.Context, a *domain.Application) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.seq++
			a.ID = s.seq
			s.rows[a.ApplicationID] = *a
			return nil
		},
		SaveFn: func(_ context.Context, a *domain.Application) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.rows[a.ApplicationID] = *a
			return nil
		},
		DeleteFn: func(_ context.Context, a *domain.Application) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.rows[a.ApplicationID]; !ok {
				return domain.ErrNotFound
			}
			delete(s.rows, a.ApplicationID)
			return nil
		},
		GetByApplicationIDFn:          s.get,
		GetByApplicationIDForUpdateFn: s.get,
		ListByApplicationIDsForUpdateFn: func(_ context.Context, ids []string) ([]domain.Application, error) {
			want := map[string]bool{}
			for _, id := range ids {
				want[id] = true
			}
			return s.list(func(a domain.Application) bool { return want[a.ApplicationID] }), nil
		},
		ListByStudentIDFn: func(_ context.Context, studentID string) ([]domain.Application, error) {
			return s.list(func(a domain.Application) bool { return a.StudentID == studentID }), nil
		},
		ListQueueCandidatesFn: func(_ context.Context, since time.Time) ([]domain.Application, error) {
			return s.list(func(a domain.Application) bool {
				return a.Status == domain.StatusApproved || a.Status == domain.StatusPendingAllocation ||
					(a.AllocationDate != nil && !a.AllocationDate.Before(since))
			}), nil
		},
	}
}
