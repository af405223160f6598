package handlers

import (
	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	task, err := h.service.Create(actor, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTaskResponse(*task))
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	task, err := h.service.Get(actor, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewTaskResponse(*task))
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	filter := dto.TaskFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Page:     c.QueryInt("page", 1),
	}
	if v := c.Query("assigned_to"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.AssignedTo = &id
		}
	}
	if v := c.Query("client_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.ClientID = &id
		}
	}

	resp, err := h.service.List(actor, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	task, err := h.service.Update(actor, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewTaskResponse(*task))
}

func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	task, err := h.service.Complete(actor, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewTaskResponse(*task))
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "Task deleted"})
}

func (h *TaskHandler) ListComments(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	comments, err := h.service.Comments(actor, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// AddComment accepts both JSON and form bodies; fiber's BodyParser picks the
// codec from the content type, so the form-submission and machine-readable
// variants share one handler.
func (h *TaskHandler) AddComment(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	comment, err := h.service.AddComment(actor, id, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}
