package http

import (
	"errors"
	"net/http"

	"ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/workflow"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case workflow.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err; internal failures are not echoed to the client.
func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	var ve *workflow.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(code, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	case code == http.StatusInternalServerError:
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	default:
		return c.JSON(code, ErrorResponse{Error: err.Error()})
	}
}

// decode binds and validates req. A non-nil response means the request is
// rejected with the returned code.
func decode(c echo.Context, req any) (int, *ErrorResponse) {
	if err := c.Bind(req); err != nil {
		return http.StatusBadRequest, &ErrorResponse{Error: "invalid body"}
	}
	if err := c.Validate(req); err != nil {
		return http.StatusUnprocessableEntity, &ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		}
	}
	return 0, nil
}
