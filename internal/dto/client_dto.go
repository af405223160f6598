package dto

import "github.com/clientdesk/crm-backend/internal/models"

type ClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Status    string `json:"status"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

// ClientFilter carries the list query parameters. Search matches name,
// email and company as a case-insensitive substring.
type ClientFilter struct {
	Search  string
	Status  string
	Company string
	Page    int
}

type ClientListResponse struct {
	Clients    []models.Client `json:"clients"`
	Pagination Pagination      `json:"pagination"`
}

type ClientDetailResponse struct {
	Client         models.Client     `json:"client"`
	Tasks          []models.Task     `json:"tasks"`
	Documents      []models.Document `json:"documents"`
	TotalTasks     int64             `json:"total_tasks"`
	PendingTasks   int64             `json:"pending_tasks"`
	TotalDocuments int64             `json:"total_documents"`
}
