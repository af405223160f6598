package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client statuses.
const (
	ClientActive   = "active"
	ClientInactive = "inactive"
	ClientProspect = "prospect"
	ClientFormer   = "former"
)

var ClientStatuses = []string{ClientActive, ClientInactive, ClientProspect, ClientFormer}

// Client is a tenant-scoped client record. Email is unique per tenant, not
// globally.
type Client struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_clients_tenant_email" json:"tenant_id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Email       string     `gorm:"size:255;not null;uniqueIndex:idx_clients_tenant_email" json:"email"`
	Phone       string     `gorm:"size:20" json:"phone"`
	Company     string     `gorm:"size:200" json:"company"`
	Status      string     `gorm:"size:20;default:'active'" json:"status"`
	Address     string     `gorm:"type:text" json:"address"`
	Notes       string     `gorm:"type:text" json:"notes"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Tenant      Tenant     `gorm:"foreignKey:TenantID" json:"-"`
}

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

func ValidClientStatus(status string) bool {
	for _, s := range ClientStatuses {
		if s == status {
			return true
		}
	}
	return false
}
