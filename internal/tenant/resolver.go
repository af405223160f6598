package tenant

import (
	"errors"
	"fmt"

	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver maps an authenticated user to its tenant and role. The profile is
// loaded fresh per request so a revoked or re-provisioned binding takes
// effect immediately.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve returns the actor for a user. A missing profile yields an actor
// without a tenant and ErrProfileRequired.
func (r *Resolver) Resolve(userID uuid.UUID) (Actor, error) {
	var profile models.UserProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Actor{UserID: userID}, ErrProfileRequired
	}
	if err != nil {
		return Actor{}, fmt.Errorf("resolve profile: %w", err)
	}

	return Actor{
		UserID:   userID,
		TenantID: profile.TenantID,
		Role:     profile.Role,
	}, nil
}
