package history

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error

	// Oldest first
	ListByApplicationID(ctx context.Context, applicationNumericID uint64) ([]Entry, error)
}
