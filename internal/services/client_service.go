package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/clientdesk/crm-backend/internal/storage"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientService handles tenant-scoped client CRUD. Every method takes the
// acting principal explicitly; the tenant and creator stamps always come
// from the actor, never from the request payload.
type ClientService struct {
	db    *gorm.DB
	files *storage.Store
}

func NewClientService(db *gorm.DB, files *storage.Store) *ClientService {
	return &ClientService{db: db, files: files}
}

func (s *ClientService) Create(actor tenant.Actor, req *dto.ClientRequest) (*models.Client, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	if err := validateClient(req); err != nil {
		return nil, err
	}

	var existing models.Client
	if err := s.db.Scopes(tenant.Scoped(actor)).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, &ValidationError{Field: "email", Message: "a client with this email already exists"}
	}

	client := models.Client{
		TenantID:    actor.TenantID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Status:      req.Status,
		Address:     req.Address,
		Notes:       req.Notes,
		CreatedByID: &actor.UserID,
	}
	if client.Status == "" {
		client.Status = models.ClientActive
	}

	if err := s.db.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

func (s *ClientService) Get(actor tenant.Actor, id uuid.UUID) (*models.Client, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var client models.Client
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&client, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &client, nil
}

// Detail returns a client with its tasks and documents, newest first.
func (s *ClientService) Detail(actor tenant.Actor, id uuid.UUID) (*dto.ClientDetailResponse, error) {
	client, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Where("client_id = ?", client.ID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	var documents []models.Document
	if err := s.db.Where("client_id = ?", client.ID).Order("created_at DESC").Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	var pending int64
	s.db.Model(&models.Task{}).Where("client_id = ? AND status = ?", client.ID, models.TaskPending).Count(&pending)

	return &dto.ClientDetailResponse{
		Client:         *client,
		Tasks:          tasks,
		Documents:      documents,
		TotalTasks:     int64(len(tasks)),
		PendingTasks:   pending,
		TotalDocuments: int64(len(documents)),
	}, nil
}

func (s *ClientService) List(actor tenant.Actor, filter dto.ClientFilter) (*dto.ClientListResponse, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}
	return s.list(s.db.Model(&models.Client{}).Scopes(tenant.Scoped(actor)), filter)
}

// ListAllTenants is the back-office variant: superusers see every tenant's
// clients through the explicit, audited bypass. For anyone else the bypass
// collapses back to their own tenant.
func (s *ClientService) ListAllTenants(actor tenant.Actor, filter dto.ClientFilter) (*dto.ClientListResponse, error) {
	return s.list(s.db.Model(&models.Client{}).Scopes(tenant.Bypass(actor)), filter)
}

func (s *ClientService) list(q *gorm.DB, filter dto.ClientFilter) (*dto.ClientListResponse, error) {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Company != "" {
		q = q.Where("LOWER(company) LIKE ?", "%"+strings.ToLower(filter.Company)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var clients []models.Client
	err := q.Order("last_name, first_name").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return &dto.ClientListResponse{
		Clients: clients,
		Pagination: dto.Pagination{
			Page:       page,
			PageSize:   PageSize,
			Total:      total,
			TotalPages: (total + PageSize - 1) / PageSize,
		},
	}, nil
}

func (s *ClientService) Update(actor tenant.Actor, id uuid.UUID, req *dto.ClientRequest) (*models.Client, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var client models.Client
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&client, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}

	if err := validateClient(req); err != nil {
		return nil, err
	}

	var existing models.Client
	if err := s.db.Scopes(tenant.Scoped(actor)).
		Where("email = ? AND id <> ?", req.Email, client.ID).
		First(&existing).Error; err == nil {
		return nil, &ValidationError{Field: "email", Message: "a client with this email already exists"}
	}

	client.FirstName = req.FirstName
	client.LastName = req.LastName
	client.Email = req.Email
	client.Phone = req.Phone
	client.Company = req.Company
	if req.Status != "" {
		client.Status = req.Status
	}
	client.Address = req.Address
	client.Notes = req.Notes

	if err := s.db.Save(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return &client, nil
}

// Delete removes a client and cascades to its tasks, task comments and
// documents in one transaction. Stored files are removed after the commit;
// a failed file removal is logged, never rolled into the transaction.
func (s *ClientService) Delete(actor tenant.Actor, id uuid.UUID) error {
	if !actor.HasTenant() {
		return tenant.ErrProfileRequired
	}

	var client models.Client
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&client, "id = ?", id).Error; err != nil {
		return ErrNotFound
	}

	var documents []models.Document
	if err := s.db.Where("client_id = ?", client.ID).Find(&documents).Error; err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("client_id = ?", client.ID)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	for _, doc := range documents {
		if err := s.files.Delete(doc.FilePath); err != nil {
			slog.Error("failed to delete document file",
				"tenant_id", client.TenantID.String(),
				"document_id", doc.ID.String(),
				"path", doc.FilePath,
				"error", err)
		}
	}
	return nil
}

func validateClient(req *dto.ClientRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return &ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(req.LastName) == "" {
		return &ValidationError{Field: "last_name", Message: "last name is required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if req.Status != "" && !models.ValidClientStatus(req.Status) {
		return &ValidationError{Field: "status", Message: "invalid status"}
	}
	return nil
}
