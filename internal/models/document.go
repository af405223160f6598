package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document types.
const (
	DocContract = "contract"
	DocInvoice  = "invoice"
	DocProposal = "proposal"
	DocReport   = "report"
	DocOther    = "other"
)

var DocumentTypes = []string{DocContract, DocInvoice, DocProposal, DocReport, DocOther}

// Document is tenant-scoped file metadata. The blob lives on disk at
// documents/<tenant-slug>/<client-id>/<filename>; deleting the record also
// deletes the blob.
type Document struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	DocumentType string     `gorm:"size:20;default:'other'" json:"document_type"`
	FilePath     string     `gorm:"size:500;not null" json:"-"`
	FileName     string     `gorm:"size:255;not null" json:"file_name"`
	FileSize     int64      `json:"file_size"`
	Description  string     `gorm:"type:text" json:"description"`
	UploadedByID *uuid.UUID `gorm:"type:uuid" json:"uploaded_by_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Client       Client     `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (d *Document) FileExtension() string {
	return strings.ToLower(filepath.Ext(d.FileName))
}

func ValidDocumentType(docType string) bool {
	for _, t := range DocumentTypes {
		if t == docType {
			return true
		}
	}
	return false
}
