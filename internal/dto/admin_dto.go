package dto

import "github.com/google/uuid"

type CreateTenantRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateProfileRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Role     string    `json:"role"`
	Phone    string    `json:"phone"`
}
