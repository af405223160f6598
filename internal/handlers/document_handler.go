package handlers

import (
	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	service *services.DocumentService
}

func NewDocumentHandler(service *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload takes a multipart form: metadata fields plus a "file" part.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.DocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "file is required", Field: "file",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "could not read uploaded file", Field: "file",
		})
	}
	defer f.Close()

	doc, err := h.service.Upload(actor, &req, fileHeader.Filename, fileHeader.Size, f)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	doc, err := h.service.Get(actor, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	filter := dto.DocumentFilter{
		Search:       c.Query("search"),
		DocumentType: c.Query("document_type"),
		Page:         c.QueryInt("page", 1),
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

func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	var req dto.DocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	doc, err := h.service.Update(actor, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(doc)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "Document deleted"})
}

// Download streams the stored file with the original filename in the
// disposition header.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}

	path, filename, err := h.service.Download(actor, id)
	if err != nil {
		return fail(c, err)
	}
	return c.Download(path, filename)
}
