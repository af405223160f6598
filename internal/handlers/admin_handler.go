package handlers

import (
	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the back-office provisioning and cross-tenant views.
// Every route behind it carries the AdminRequired middleware.
type AdminHandler struct {
	tenants *services.TenantService
	clients *services.ClientService
}

func NewAdminHandler(tenants *services.TenantService, clients *services.ClientService) *AdminHandler {
	return &AdminHandler{tenants: tenants, clients: clients}
}

func (h *AdminHandler) CreateTenant(c *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	t, err := h.tenants.CreateTenant(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *AdminHandler) ListTenants(c *fiber.Ctx) error {
	tenants, err := h.tenants.ListTenants()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"tenants": tenants})
}

func (h *AdminHandler) CreateProfile(c *fiber.Ctx) error {
	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	profile, err := h.tenants.CreateProfile(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// ListClients is the audited cross-tenant view: the actor was marked
// superuser by AdminRequired, so the bypass scope applies.
func (h *AdminHandler) ListClients(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	filter := dto.ClientFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
	}

	resp, err := h.clients.ListAllTenants(actor, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}
