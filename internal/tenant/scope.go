package tenant

import (
	"log/slog"

	"github.com/clientdesk/crm-backend/internal/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForTenant returns a GORM scope that filters by tenant_id.
func ForTenant(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// Scoped filters by the actor's tenant. An actor without a tenant matches
// nothing; the profile guard in the services should have rejected the call
// before any query runs.
func Scoped(actor Actor) func(db *gorm.DB) *gorm.DB {
	return ForTenant(actor.TenantID)
}

// Bypass returns an unrestricted scope for superusers. The bypass is always
// logged and counted; non-superusers silently fall back to their own tenant
// so a misplaced call can never widen access.
func Bypass(actor Actor) func(db *gorm.DB) *gorm.DB {
	if !actor.Superuser {
		return Scoped(actor)
	}
	slog.Warn("tenant scope bypassed", "user_id", actor.UserID.String())
	metrics.ScopeBypassTotal.Inc()
	return func(db *gorm.DB) *gorm.DB {
		return db
	}
}
