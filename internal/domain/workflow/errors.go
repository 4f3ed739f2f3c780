package workflow

import (
	"errors"
	"fmt"

	"ebursary-backend/internal/domain/application"
)

var (
	// ErrForbidden: the actor's capability set does not include the action.
	ErrForbidden = errors.New("action not permitted for role")
	// ErrIllegalTransition: the status change is not in the transition table.
	ErrIllegalTransition = errors.New("status transition not permitted")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Kind names the refusal class of err for logs and metric labels; "" when err
// is not a workflow refusal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrIllegalTransition):
		return "illegal_transition"
	case IsValidation(err):
		return "validation"
	case errors.Is(err, application.ErrNotFound):
		return "not_found"
	}
	return ""
}
