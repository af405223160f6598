package services

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	clients := NewClientService(db, store)
	documents := NewDocumentService(db, store)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")
	client, err := clients.Create(actor, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	_, err = documents.Upload(actor,
		&dto.DocumentRequest{ClientID: client.ID, Title: "Malware"},
		"setup.exe", 100, bytes.NewReader([]byte("MZ")))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "file", vErr.Field)

	// Nothing persisted, nothing written.
	var count int64
	db.Model(&models.Document{}).Count(&count)
	require.Zero(t, count)
}

func TestUploadSizeCeiling(t *testing.T) {
	// Boundary behavior of the validator itself: 10 MiB passes, one byte
	// over fails.
	require.NoError(t, validateFile("report.pdf", MaxFileSize))
	require.NoError(t, validateFile("report.pdf", 9<<20))

	err := validateFile("report.pdf", MaxFileSize+1)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "file", vErr.Field)

	err = validateFile("report.pdf", 11<<20)
	require.ErrorAs(t, err, &vErr)
}

func TestUploadStoresUnderPathConvention(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	clients := NewClientService(db, store)
	documents := NewDocumentService(db, store)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")
	client, err := clients.Create(actor, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	content := []byte("%PDF-1.4 test")
	doc, err := documents.Upload(actor,
		&dto.DocumentRequest{ClientID: client.ID, Title: "Contract", DocumentType: models.DocContract},
		"contract.pdf", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)

	want := filepath.Join("documents", "acme", client.ID.String(), "contract.pdf")
	require.Equal(t, want, doc.FilePath)
	require.Equal(t, "contract.pdf", doc.FileName)
	require.Equal(t, actor.TenantID, doc.TenantID)
	require.NotNil(t, doc.UploadedByID)
	require.Equal(t, actor.UserID, *doc.UploadedByID)
	require.True(t, store.Exists(doc.FilePath))
}

func TestUploadRejectsCrossTenantClient(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	clients := NewClientService(db, store)
	documents := NewDocumentService(db, store)

	tenantA := seedTenant(t, db, "Acme", "acme")
	tenantB := seedTenant(t, db, "Globex", "globex")
	actorA := seedActor(t, db, tenantA, "a@acme.test")
	actorB := seedActor(t, db, tenantB, "b@globex.test")

	foreign, err := clients.Create(actorB, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	_, err = documents.Upload(actorA,
		&dto.DocumentRequest{ClientID: foreign.ID, Title: "Contract"},
		"contract.pdf", 100, bytes.NewReader(make([]byte, 100)))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentDeleteRemovesFile(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	clients := NewClientService(db, store)
	documents := NewDocumentService(db, store)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")
	client, err := clients.Create(actor, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	doc, err := documents.Upload(actor,
		&dto.DocumentRequest{ClientID: client.ID, Title: "Contract"},
		"contract.pdf", 100, bytes.NewReader(make([]byte, 100)))
	require.NoError(t, err)
	require.True(t, store.Exists(doc.FilePath))

	require.NoError(t, documents.Delete(actor, doc.ID))
	require.False(t, store.Exists(doc.FilePath))
	_, err = documents.Get(actor, doc.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadMissingBackingFileIsNotFound(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	clients := NewClientService(db, store)
	documents := NewDocumentService(db, store)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")
	client, err := clients.Create(actor, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	doc, err := documents.Upload(actor,
		&dto.DocumentRequest{ClientID: client.ID, Title: "Contract"},
		"contract.pdf", 100, bytes.NewReader(make([]byte, 100)))
	require.NoError(t, err)

	path, filename, err := documents.Download(actor, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "contract.pdf", filename)
	require.Equal(t, store.AbsPath(doc.FilePath), path)

	require.NoError(t, store.Delete(doc.FilePath))
	_, _, err = documents.Download(actor, doc.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
