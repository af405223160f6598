package dto

import (
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/google/uuid"
)

type DocumentRequest struct {
	ClientID     uuid.UUID `json:"client_id" form:"client_id"`
	Title        string    `json:"title" form:"title"`
	DocumentType string    `json:"document_type" form:"document_type"`
	Description  string    `json:"description" form:"description"`
}

type DocumentFilter struct {
	Search       string
	DocumentType string
	ClientID     *uuid.UUID
	Page         int
}

type DocumentListResponse struct {
	Documents  []models.Document `json:"documents"`
	Pagination Pagination        `json:"pagination"`
}
