package dto

import "github.com/clientdesk/crm-backend/internal/models"

// StatusCount is one row of a group-by-status aggregate.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DashboardSummary is the tenant-scoped overview, computed fresh per request.
type DashboardSummary struct {
	TotalClients       int64 `json:"total_clients"`
	ActiveClients      int64 `json:"active_clients"`
	NewClientsThisMonth int64 `json:"new_clients_this_month"`

	TotalTasks    int64 `json:"total_tasks"`
	PendingTasks  int64 `json:"pending_tasks"`
	OverdueTasks  int64 `json:"overdue_tasks"`
	TasksDueToday int64 `json:"tasks_due_today"`

	TotalDocuments     int64 `json:"total_documents"`
	DocumentsThisMonth int64 `json:"documents_this_month"`

	RecentClients   []models.Client   `json:"recent_clients"`
	RecentTasks     []models.Task     `json:"recent_tasks"`
	RecentDocuments []models.Document `json:"recent_documents"`

	TasksByStatus   []StatusCount `json:"tasks_by_status"`
	ClientsByStatus []StatusCount `json:"clients_by_status"`
}
