package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles tenant-scoped task CRUD, the completion transition and
// the comment thread.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) Create(actor tenant.Actor, req *dto.TaskRequest) (*models.Task, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	if err := s.validateTask(actor, req); err != nil {
		return nil, err
	}

	task := models.Task{
		TenantID:     actor.TenantID,
		ClientID:     req.ClientID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
		CreatedByID:  &actor.UserID,
	}
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) Get(actor tenant.Actor, id uuid.UUID) (*models.Task, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var task models.Task
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&task, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (s *TaskService) List(actor tenant.Actor, filter dto.TaskFilter) (*dto.TaskListResponse, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	q := s.db.Model(&models.Task{}).Scopes(tenant.Scoped(actor))

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		matchingClients := s.db.Model(&models.Client{}).Select("id").
			Scopes(tenant.Scoped(actor)).
			Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR client_id IN (?)", like, like, matchingClients)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to_id = ?", *filter.AssignedTo)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	var pending, overdue int64
	q.Session(&gorm.Session{}).Where("status = ?", models.TaskPending).Count(&pending)
	q.Session(&gorm.Session{}).
		Where("status IN ? AND due_date < ?", models.OpenTaskStatuses, time.Now()).
		Count(&overdue)

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var tasks []models.Task
	err := q.Order("created_at DESC").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.NewTaskResponse(t))
	}

	return &dto.TaskListResponse{
		Tasks: out,
		Stats: dto.TaskStats{Total: total, Pending: pending, Overdue: overdue},
		Pagination: dto.Pagination{
			Page:       page,
			PageSize:   PageSize,
			Total:      total,
			TotalPages: (total + PageSize - 1) / PageSize,
		},
	}, nil
}

// Update applies field edits. It deliberately never touches CompletedAt:
// that timestamp belongs to the completion transition alone.
func (s *TaskService) Update(actor tenant.Actor, id uuid.UUID, req *dto.TaskRequest) (*models.Task, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var task models.Task
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&task, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}

	if err := s.validateTask(actor, req); err != nil {
		return nil, err
	}

	task.ClientID = req.ClientID
	task.Title = req.Title
	task.Description = req.Description
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	task.AssignedToID = req.AssignedToID
	task.DueDate = req.DueDate

	if err := s.db.Save(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &task, nil
}

// Complete marks the task completed and stamps CompletedAt. Reopening later
// leaves the stale timestamp in place; only this transition writes it.
func (s *TaskService) Complete(actor tenant.Actor, id uuid.UUID) (*models.Task, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var task models.Task
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&task, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	task.Status = models.TaskCompleted
	task.CompletedAt = &now

	if err := s.db.Model(&task).Updates(map[string]interface{}{
		"status":       models.TaskCompleted,
		"completed_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) Delete(actor tenant.Actor, id uuid.UUID) error {
	if !actor.HasTenant() {
		return tenant.ErrProfileRequired
	}

	var task models.Task
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&task, "id = ?", id).Error; err != nil {
		return ErrNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddComment appends to the task's thread. The task lookup is tenant-scoped,
// so commenting on another tenant's task reads as not-found.
func (s *TaskService) AddComment(actor tenant.Actor, taskID uuid.UUID, content string) (*models.TaskComment, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Field: "content", Message: "comment content is required"}
	}

	var task models.Task
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&task, "id = ?", taskID).Error; err != nil {
		return nil, ErrNotFound
	}

	comment := models.TaskComment{
		TaskID:   task.ID,
		AuthorID: actor.UserID,
		Content:  content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

// Comments returns the thread in creation order with author names resolved.
func (s *TaskService) Comments(actor tenant.Actor, taskID uuid.UUID) ([]dto.CommentResponse, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var task models.Task
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&task, "id = ?", taskID).Error; err != nil {
		return nil, ErrNotFound
	}

	var comments []models.TaskComment
	err := s.db.Preload("Author").
		Where("task_id = ?", task.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.CommentResponse{
			ID:        c.ID,
			Author:    c.Author.FirstName + " " + c.Author.LastName,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

func (s *TaskService) validateTask(actor tenant.Actor, req *dto.TaskRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if req.Status != "" && !models.ValidTaskStatus(req.Status) {
		return &ValidationError{Field: "status", Message: "invalid status"}
	}
	if req.Priority != "" && !models.ValidTaskPriority(req.Priority) {
		return &ValidationError{Field: "priority", Message: "invalid priority"}
	}

	// The client must belong to the actor's tenant. A miss is reported as
	// not-found whether the id is wrong or owned by another tenant.
	var client models.Client
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&client, "id = ?", req.ClientID).Error; err != nil {
		return ErrNotFound
	}

	if req.AssignedToID != nil {
		var profile models.UserProfile
		err := s.db.Where("user_id = ? AND tenant_id = ?", *req.AssignedToID, actor.TenantID).
			First(&profile).Error
		if err != nil {
			return &ValidationError{Field: "assigned_to_id", Message: "assignee is not a member of this tenant"}
		}
	}
	return nil
}
