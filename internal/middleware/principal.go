package middleware

import (
	"errors"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/metrics"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// LoadActor resolves the JWT principal to an Actor and stores it in the
// request context. A missing profile still yields an actor (the admin
// middleware may elevate it); tenant-scoped routes add RequireTenant on top.
func LoadActor(resolver *tenant.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tenant.UserIDFromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		actor, err := resolver.Resolve(userID)
		if err != nil && !errors.Is(err, tenant.ErrProfileRequired) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		tenant.SetActor(c, actor)
		return c.Next()
	}
}

// RequireTenant is the universal guard on tenant-scoped routes: a principal
// without a tenant binding is sent to the setup flow, not hard-failed.
func RequireTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := tenant.GetActor(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !actor.HasTenant() {
			metrics.ProfileMissingTotal.Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.SetupRequiredResponse{
				Error:         true,
				SetupRequired: true,
				Message:       "Account setup required: no tenant profile",
			})
		}
		return c.Next()
	}
}
