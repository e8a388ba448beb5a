package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coachdesk/coachdesk/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary GET /v1/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.Summary(c.Context(), c.Query("trainer_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
