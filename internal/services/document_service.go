package services

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/metrics"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/clientdesk/crm-backend/internal/storage"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxFileSize is the upload ceiling (10 MiB).
const MaxFileSize = 10 << 20

// allowedExtensions is the upload allow-list. Anything else is rejected
// before the file touches storage.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// DocumentService handles tenant-scoped document metadata plus the backing
// files on disk. Validation always completes before the first byte is
// written.
type DocumentService struct {
	db    *gorm.DB
	files *storage.Store
}

func NewDocumentService(db *gorm.DB, files *storage.Store) *DocumentService {
	return &DocumentService{db: db, files: files}
}

func (s *DocumentService) Upload(actor tenant.Actor, req *dto.DocumentRequest, filename string, size int64, r io.Reader) (*models.Document, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	if strings.TrimSpace(req.Title) == "" {
		metrics.DocumentUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if req.DocumentType != "" && !models.ValidDocumentType(req.DocumentType) {
		metrics.DocumentUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, &ValidationError{Field: "document_type", Message: "invalid document type"}
	}
	if err := validateFile(filename, size); err != nil {
		metrics.DocumentUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var client models.Client
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&client, "id = ?", req.ClientID).Error; err != nil {
		return nil, ErrNotFound
	}

	var tenantRec models.Tenant
	if err := s.db.First(&tenantRec, "id = ?", actor.TenantID).Error; err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	rel, err := s.files.Save(tenantRec.Slug, client.ID, filename, r)
	if err != nil {
		metrics.DocumentUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := models.Document{
		TenantID:     actor.TenantID,
		ClientID:     client.ID,
		Title:        req.Title,
		DocumentType: req.DocumentType,
		FilePath:     rel,
		FileName:     filepath.Base(filename),
		FileSize:     size,
		Description:  req.Description,
		UploadedByID: &actor.UserID,
	}
	if doc.DocumentType == "" {
		doc.DocumentType = models.DocOther
	}

	if err := s.db.Create(&doc).Error; err != nil {
		// Keep metadata and blob atomic: roll the file back on DB failure.
		if rmErr := s.files.Delete(rel); rmErr != nil {
			slog.Error("failed to remove orphaned file", "path", rel, "error", rmErr)
		}
		metrics.DocumentUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	metrics.DocumentUploadsTotal.WithLabelValues("ok").Inc()
	return &doc, nil
}

func (s *DocumentService) Get(actor tenant.Actor, id uuid.UUID) (*models.Document, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var doc models.Document
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&doc, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (s *DocumentService) List(actor tenant.Actor, filter dto.DocumentFilter) (*dto.DocumentListResponse, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	q := s.db.Model(&models.Document{}).Scopes(tenant.Scoped(actor))

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		matchingClients := s.db.Model(&models.Client{}).Select("id").
			Scopes(tenant.Scoped(actor)).
			Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR client_id IN (?)", like, like, matchingClients)
	}
	if filter.DocumentType != "" {
		q = q.Where("document_type = ?", filter.DocumentType)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var documents []models.Document
	err := q.Order("created_at DESC").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&documents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return &dto.DocumentListResponse{
		Documents: documents,
		Pagination: dto.Pagination{
			Page:       page,
			PageSize:   PageSize,
			Total:      total,
			TotalPages: (total + PageSize - 1) / PageSize,
		},
	}, nil
}

// Update edits document metadata. The stored file and its client binding are
// fixed at upload time; replacing the file means uploading a new document.
func (s *DocumentService) Update(actor tenant.Actor, id uuid.UUID, req *dto.DocumentRequest) (*models.Document, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	var doc models.Document
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&doc, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if req.DocumentType != "" && !models.ValidDocumentType(req.DocumentType) {
		return nil, &ValidationError{Field: "document_type", Message: "invalid document type"}
	}

	doc.Title = req.Title
	if req.DocumentType != "" {
		doc.DocumentType = req.DocumentType
	}
	doc.Description = req.Description

	if err := s.db.Save(&doc).Error; err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return &doc, nil
}

// Delete removes the metadata row, then the backing file. A file-delete
// failure is logged with enough context to find the orphan; it never undoes
// the metadata delete.
func (s *DocumentService) Delete(actor tenant.Actor, id uuid.UUID) error {
	if !actor.HasTenant() {
		return tenant.ErrProfileRequired
	}

	var doc models.Document
	if err := s.db.Scopes(tenant.Scoped(actor)).First(&doc, "id = ?", id).Error; err != nil {
		return ErrNotFound
	}

	if err := s.db.Delete(&doc).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := s.files.Delete(doc.FilePath); err != nil {
		slog.Error("failed to delete document file",
			"tenant_id", doc.TenantID.String(),
			"document_id", doc.ID.String(),
			"path", doc.FilePath,
			"error", err)
	}
	return nil
}

// Download resolves a document to its on-disk path and original filename.
// A missing backing file reads the same as a missing record.
func (s *DocumentService) Download(actor tenant.Actor, id uuid.UUID) (path string, filename string, err error) {
	doc, err := s.Get(actor, id)
	if err != nil {
		return "", "", err
	}
	if !s.files.Exists(doc.FilePath) {
		return "", "", ErrNotFound
	}
	return s.files.AbsPath(doc.FilePath), doc.FileName, nil
}

func validateFile(filename string, size int64) error {
	if size > MaxFileSize {
		return &ValidationError{Field: "file", Message: "file size must be under 10MB"}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return &ValidationError{Field: "file", Message: "file type not allowed; upload PDF, DOC, DOCX, TXT, JPG, JPEG, or PNG"}
	}
	return nil
}
