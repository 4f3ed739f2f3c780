package http

import (
	"net/http"
	"strings"

	"ebursary-backend/internal/adapter/middleware"
	"ebursary-backend/internal/domain/workflow"

	"github.com/labstack/echo/v4"
)

var errUnauthenticated = ErrorResponse{Error: "unauthenticated"}

// request reads the authenticated actor and, when withID is set, the
// :application_id path param. A non-nil response means the request is
// rejected with the returned code.
func request(c echo.Context, withID bool) (workflow.Actor, string, int, *ErrorResponse) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return actor, "", http.StatusUnauthorized, &errUnauthenticated
	}
	if !withID {
		return actor, "", 0, nil
	}
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return actor, "", http.StatusBadRequest, &ErrorResponse{Error: "missing application_id path param"}
	}
	if !reHex32.MatchString(applicationID) {
		return actor, "", http.StatusBadRequest, &ErrorResponse{Error: "application_id must be 32-char lowercase hex"}
	}
	return actor, applicationID, 0, nil
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
