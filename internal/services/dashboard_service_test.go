package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/clientdesk/crm-backend/internal/tenant"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummaryCounts(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	clients := NewClientService(db, store)
	tasks := NewTaskService(db)
	dashboard := NewDashboardService(db)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")

	// Three old clients, two recent ones. created_at has to be backdated
	// after the fact since GORM stamps it on create.
	past := time.Now().AddDate(0, 0, -40)
	for i := 0; i < 3; i++ {
		c, err := clients.Create(actor, clientReq("Old", fmt.Sprintf("Client%d", i), fmt.Sprintf("old%d@example.com", i)))
		require.NoError(t, err)
		require.NoError(t, db.Model(c).UpdateColumn("created_at", past).Error)
	}
	var fresh *models.Client
	for i := 0; i < 2; i++ {
		c, err := clients.Create(actor, clientReq("New", fmt.Sprintf("Client%d", i), fmt.Sprintf("new%d@example.com", i)))
		require.NoError(t, err)
		fresh = c
	}

	// One inactive client among the five.
	req := clientReq("New", "Client1", "new1@example.com")
	req.Status = models.ClientInactive
	_, err := clients.Update(actor, fresh.ID, req)
	require.NoError(t, err)

	yesterday := time.Now().Add(-24 * time.Hour)
	noonToday := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 12, 0, 0, 0, time.Now().Location())
	nextWeek := time.Now().AddDate(0, 0, 7)

	mkTask := func(title, status string, due *time.Time) {
		_, err := tasks.Create(actor, &dto.TaskRequest{
			ClientID: fresh.ID,
			Title:    title,
			Status:   status,
			DueDate:  due,
		})
		require.NoError(t, err)
	}
	mkTask("overdue", models.TaskPending, &yesterday)
	mkTask("due today", models.TaskInProgress, &noonToday)
	mkTask("future", models.TaskPending, &nextWeek)
	mkTask("done", models.TaskCompleted, &yesterday)

	summary, err := dashboard.Summary(actor)
	require.NoError(t, err)

	require.EqualValues(t, 5, summary.TotalClients)
	require.EqualValues(t, 4, summary.ActiveClients)
	require.EqualValues(t, 2, summary.NewClientsThisMonth)

	require.EqualValues(t, 4, summary.TotalTasks)
	require.EqualValues(t, 2, summary.PendingTasks)
	// Completed tasks never count as overdue, whatever their due date. The
	// due-today task at noon may or may not have passed yet, so overdue is
	// either 1 or 2 depending on wall clock; only the yesterday task is
	// guaranteed.
	require.GreaterOrEqual(t, summary.OverdueTasks, int64(1))
	require.LessOrEqual(t, summary.OverdueTasks, int64(2))
	require.EqualValues(t, 1, summary.TasksDueToday)

	statuses := map[string]int64{}
	for _, row := range summary.TasksByStatus {
		statuses[row.Status] = row.Count
	}
	require.EqualValues(t, 2, statuses[models.TaskPending])
	require.EqualValues(t, 1, statuses[models.TaskInProgress])
	require.EqualValues(t, 1, statuses[models.TaskCompleted])

	require.Len(t, summary.RecentClients, 5)
	require.LessOrEqual(t, len(summary.RecentTasks), 5)
}

func TestDashboardSummaryNeverCrossesTenants(t *testing.T) {
	db := newTestDB(t)
	store := newTestStore(t)
	clients := NewClientService(db, store)
	dashboard := NewDashboardService(db)

	tenantA := seedTenant(t, db, "Acme", "acme")
	tenantB := seedTenant(t, db, "Globex", "globex")
	actorA := seedActor(t, db, tenantA, "a@acme.test")
	actorB := seedActor(t, db, tenantB, "b@globex.test")

	_, err := clients.Create(actorA, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)
	_, err = clients.Create(actorB, clientReq("John", "Smith", "john@example.com"))
	require.NoError(t, err)

	summary, err := dashboard.Summary(actorB)
	require.NoError(t, err)
	require.EqualValues(t, 1, summary.TotalClients)
	require.Len(t, summary.RecentClients, 1)
	require.Equal(t, "Smith", summary.RecentClients[0].LastName)
}

func TestDashboardRequiresProfile(t *testing.T) {
	db := newTestDB(t)
	dashboard := NewDashboardService(db)

	user := &models.User{Email: "lost@nowhere.test", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	_, err := dashboard.Summary(tenant.Actor{UserID: user.ID})
	require.ErrorIs(t, err, tenant.ErrProfileRequired)
}
