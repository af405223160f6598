package handlers

import (
	"errors"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/services"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail translates service errors into the API's error taxonomy. Not-found
// and cross-tenant access are already collapsed by the services; this keeps
// the mapping in one place so no handler can leak a different signal.
func fail(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: vErr.Message, Field: vErr.Field,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Not found",
		})
	case errors.Is(err, tenant.ErrProfileRequired):
		return c.Status(fiber.StatusForbidden).JSON(dto.SetupRequiredResponse{
			Error:         true,
			SetupRequired: true,
			Message:       "Account setup required: no tenant profile",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func actorFromCtx(c *fiber.Ctx) (tenant.Actor, error) {
	actor, ok := tenant.GetActor(c)
	if !ok {
		return tenant.Actor{}, errors.New("missing actor in context")
	}
	return actor, nil
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid id",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}
