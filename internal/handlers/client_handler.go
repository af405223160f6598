package handlers

import (
	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	service *services.ClientService
}

func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	client, err := h.service.Create(actor, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	detail, err := h.service.Detail(actor, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(detail)
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	filter := dto.ClientFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Company: c.Query("company"),
		Page:    c.QueryInt("page", 1),
	}

	resp, err := h.service.List(actor, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	client, err := h.service.Update(actor, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	if err := h.service.Delete(actor, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Client deleted"})
}
