package handlers

import (
	"github.com/clientdesk/crm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	summary, err := h.service.Summary(actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
