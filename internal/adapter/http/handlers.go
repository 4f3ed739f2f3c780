package http

import (
	"net/http"
	"time"

	"ebursary-backend/internal/domain/workflow"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

type capabilitiesResp struct {
	ActorID      string                `json:"actor_id"`
	Name         string                `json:"name"`
	Role         workflow.Role         `json:"role"`
	Capabilities workflow.Capabilities `json:"capabilities"`
}

// Capabilities is recomputed from the token role on every call.
func (h *Handler) Capabilities(c echo.Context) error {
	actor, _, code, resp := request(c, false)
	if resp != nil {
		return c.JSON(code, resp)
	}
	return c.JSON(http.StatusOK, capabilitiesResp{
		ActorID:      actor.ID,
		Name:         actor.Name,
		Role:         actor.Role,
		Capabilities: workflow.CapabilitiesFor(actor.Role),
	})
}
