package services

import (
	"testing"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreateTenantSlugCollision(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)

	first, err := svc.CreateTenant(&dto.CreateTenantRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	require.Equal(t, "acme-corp", first.Slug)
	require.True(t, first.IsActive)

	_, err = svc.CreateTenant(&dto.CreateTenantRequest{Name: "Another Acme", Slug: "acme-corp"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "slug", vErr.Field)

	// The collision must not have merged into or altered the original.
	var count int64
	db.Model(&models.Tenant{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCreateTenantRejectsBadSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)

	var vErr *ValidationError
	_, err := svc.CreateTenant(&dto.CreateTenantRequest{Name: "Acme", Slug: "Not A Slug"})
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "slug", vErr.Field)

	_, err = svc.CreateTenant(&dto.CreateTenantRequest{Name: "  "})
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "name", vErr.Field)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":          "acme-corp",
		"  Wayne & Sons  ":   "wayne-sons",
		"Already-Slugged":    "already-slugged",
		"Multi   Space Inc.": "multi-space-inc",
		"42 North":           "42-north",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestCreateProfileOnePerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)

	ten := seedTenant(t, db, "Acme", "acme")
	other := seedTenant(t, db, "Globex", "globex")

	user := &models.User{Email: "pat@acme.test", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	profile, err := svc.CreateProfile(&dto.CreateProfileRequest{UserID: user.ID, TenantID: ten.ID})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, profile.Role)

	// A second profile is refused even for a different tenant; the binding
	// is permanent.
	_, err = svc.CreateProfile(&dto.CreateProfileRequest{UserID: user.ID, TenantID: other.ID})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "user_id", vErr.Field)
}

func TestCreateProfileValidatesRoleAndReferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)

	ten := seedTenant(t, db, "Acme", "acme")
	user := &models.User{Email: "pat@acme.test", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	_, err := svc.CreateProfile(&dto.CreateProfileRequest{UserID: user.ID, TenantID: ten.ID, Role: "owner"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "role", vErr.Field)

	ghost := seedTenant(t, db, "Ghost", "ghost")
	require.NoError(t, db.Delete(ghost).Error)
	_, err = svc.CreateProfile(&dto.CreateProfileRequest{UserID: user.ID, TenantID: ghost.ID})
	require.ErrorIs(t, err, ErrNotFound)
}
