package dto

import (
	"time"

	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/google/uuid"
)

type TaskRequest struct {
	ClientID     uuid.UUID  `json:"client_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
	DueDate      *time.Time `json:"due_date"`
}

type TaskFilter struct {
	Search     string
	Status     string
	Priority   string
	AssignedTo *uuid.UUID
	ClientID   *uuid.UUID
	Page       int
}

// TaskStats mirrors the counters the task list page shows alongside results.
type TaskStats struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Overdue int64 `json:"overdue"`
}

type TaskResponse struct {
	models.Task
	IsOverdue  bool `json:"is_overdue"`
	IsDueToday bool `json:"is_due_today"`
}

func NewTaskResponse(t models.Task) TaskResponse {
	return TaskResponse{Task: t, IsOverdue: t.IsOverdue(), IsDueToday: t.IsDueToday()}
}

type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Stats      TaskStats      `json:"stats"`
	Pagination Pagination     `json:"pagination"`
}

type CommentRequest struct {
	Content string `json:"content" form:"content"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
