package services

import (
	"path/filepath"
	"testing"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/clientdesk/crm-backend/internal/storage"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "crm_test.db")
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.UserProfile{},
		&models.RefreshToken{},
		&models.Client{},
		&models.Task{},
		&models.TaskComment{},
		&models.Document{},
	))
	return db
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.NewStore(t.TempDir())
}

func seedTenant(t *testing.T, db *gorm.DB, name, slug string) *models.Tenant {
	t.Helper()
	ten := &models.Tenant{Name: name, Slug: slug, IsActive: true}
	require.NoError(t, db.Create(ten).Error)
	return ten
}

// seedActor provisions a user with a profile in the given tenant and returns
// the actor a request middleware would resolve.
func seedActor(t *testing.T, db *gorm.DB, ten *models.Tenant, email string) tenant.Actor {
	t.Helper()

	user := &models.User{Email: email, Password: "x", FirstName: "Test", LastName: "User"}
	require.NoError(t, db.Create(user).Error)

	profile := &models.UserProfile{UserID: user.ID, TenantID: ten.ID, Role: models.RoleUser}
	require.NoError(t, db.Create(profile).Error)

	return tenant.Actor{UserID: user.ID, TenantID: ten.ID, Role: models.RoleUser}
}

func clientReq(first, last, email string) *dto.ClientRequest {
	return &dto.ClientRequest{FirstName: first, LastName: last, Email: email}
}
