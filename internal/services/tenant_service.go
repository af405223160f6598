package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// TenantService handles back-office provisioning: creating tenants and
// binding users to them. Normal request paths never create either.
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// CreateTenant provisions a tenant. A slug collision is a uniqueness
// violation, never a silent merge into the existing tenant.
func (s *TenantService) CreateTenant(req *dto.CreateTenantRequest) (*models.Tenant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if !slugPattern.MatchString(slug) {
		return nil, &ValidationError{Field: "slug", Message: "slug must be lowercase letters, digits and hyphens"}
	}

	var existing models.Tenant
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, &ValidationError{Field: "slug", Message: "slug already in use"}
	}

	t := models.Tenant{Name: req.Name, Slug: slug, IsActive: true}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return &t, nil
}

func (s *TenantService) ListTenants() ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := s.db.Order("name").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

// CreateProfile binds a user to a tenant with a role. A user can hold at
// most one profile, and the tenant binding is immutable afterwards: there is
// deliberately no update path for it.
func (s *TenantService) CreateProfile(req *dto.CreateProfileRequest) (*models.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return nil, ErrNotFound
	}

	var tenantRec models.Tenant
	if err := s.db.First(&tenantRec, "id = ?", req.TenantID).Error; err != nil {
		return nil, ErrNotFound
	}

	var existing models.UserProfile
	if err := s.db.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		return nil, &ValidationError{Field: "user_id", Message: "user already has a profile"}
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	valid := false
	for _, r := range models.UserRoles {
		if r == role {
			valid = true
		}
	}
	if !valid {
		return nil, &ValidationError{Field: "role", Message: "invalid role"}
	}

	profile := models.UserProfile{
		UserID:   req.UserID,
		TenantID: req.TenantID,
		Role:     role,
		Phone:    req.Phone,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

// Slugify lowercases a name and collapses runs of non-alphanumerics into
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
