package http

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the API on g. Authentication and idempotency are the
// caller's middleware on g.
func RegisterRoutes(g *echo.Group, h *Handler, apps *ApplicationHandler, alloc *AllocationHandler) {
	g.GET("/me/capabilities", h.Capabilities)

	g.POST("/applications", apps.Create)
	g.GET("/applications", apps.List)
	g.GET("/applications/:application_id", apps.Get)
	g.DELETE("/applications/:application_id", apps.Discard)
	g.POST("/applications/:application_id/submit", apps.Submit)
	g.GET("/applications/:application_id/transitions", apps.Transitions)
	g.GET("/applications/:application_id/history", apps.History)

	g.POST("/applications/:application_id/transition", alloc.Transition)
	g.POST("/applications/:application_id/allocate", alloc.Allocate)
	g.POST("/applications/:application_id/disburse", alloc.Disburse)
	g.GET("/allocations/queue", alloc.Queue)
	g.POST("/allocations/bulk", alloc.BulkAllocate)
}
