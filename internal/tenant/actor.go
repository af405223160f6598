// Package tenant implements the tenant-isolation policy: resolving a
// principal to its tenant, scoping every query to that tenant, and the
// explicit superuser bypass for back-office access.
package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrProfileRequired signals a principal without a tenant binding. Handlers
// translate it into the setup-required response, never a hard failure.
var ErrProfileRequired = errors.New("user profile required")

// Actor is the resolved principal for one request. TenantID is uuid.Nil when
// the user has no profile yet; Superuser is set only by the admin middleware
// for back-office identities.
type Actor struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Role      string
	Superuser bool
}

// HasTenant reports whether the actor is bound to a tenant.
func (a Actor) HasTenant() bool {
	return a.TenantID != uuid.Nil
}

const actorKey = "actor"

// SetActor stores the resolved actor in the request context.
func SetActor(c *fiber.Ctx, actor Actor) {
	c.Locals(actorKey, actor)
}

// GetActor returns the actor resolved by the principal middleware.
func GetActor(c *fiber.Ctx) (Actor, bool) {
	actor, ok := c.Locals(actorKey).(Actor)
	return actor, ok
}

// UserIDFromToken extracts the user UUID from JWT claims in context.
func UserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
