package services

import (
	"fmt"
	"time"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"gorm.io/gorm"
)

// DashboardService produces the tenant-scoped overview. Everything is
// computed fresh per request; there is no caching layer.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

const recentLimit = 5

func (s *DashboardService) Summary(actor tenant.Actor) (*dto.DashboardSummary, error) {
	if !actor.HasTenant() {
		return nil, tenant.ErrProfileRequired
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thirtyDaysAgo := startOfToday.AddDate(0, 0, -30)

	summary := &dto.DashboardSummary{}

	clients := func() *gorm.DB { return s.db.Model(&models.Client{}).Scopes(tenant.Scoped(actor)) }
	tasks := func() *gorm.DB { return s.db.Model(&models.Task{}).Scopes(tenant.Scoped(actor)) }
	documents := func() *gorm.DB { return s.db.Model(&models.Document{}).Scopes(tenant.Scoped(actor)) }

	if err := clients().Count(&summary.TotalClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	clients().Where("status = ?", models.ClientActive).Count(&summary.ActiveClients)
	clients().Where("created_at >= ?", thirtyDaysAgo).Count(&summary.NewClientsThisMonth)

	if err := tasks().Count(&summary.TotalTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	tasks().Where("status = ?", models.TaskPending).Count(&summary.PendingTasks)
	tasks().Where("status IN ? AND due_date < ?", models.OpenTaskStatuses, now).Count(&summary.OverdueTasks)
	tasks().Where("status IN ? AND due_date >= ? AND due_date < ?",
		models.OpenTaskStatuses, startOfToday, startOfToday.AddDate(0, 0, 1)).
		Count(&summary.TasksDueToday)

	if err := documents().Count(&summary.TotalDocuments).Error; err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	documents().Where("created_at >= ?", thirtyDaysAgo).Count(&summary.DocumentsThisMonth)

	if err := clients().Order("created_at DESC").Limit(recentLimit).Find(&summary.RecentClients).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent clients: %w", err)
	}
	if err := tasks().Order("created_at DESC").Limit(recentLimit).Find(&summary.RecentTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent tasks: %w", err)
	}
	if err := documents().Order("created_at DESC").Limit(recentLimit).Find(&summary.RecentDocuments).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent documents: %w", err)
	}

	if err := tasks().Select("status, COUNT(*) as count").
		Group("status").Order("status").
		Scan(&summary.TasksByStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to group tasks by status: %w", err)
	}
	if err := clients().Select("status, COUNT(*) as count").
		Group("status").Order("status").
		Scan(&summary.ClientsByStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to group clients by status: %w", err)
	}

	return summary, nil
}
