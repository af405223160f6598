package services

import (
	"testing"
	"time"

	"github.com/clientdesk/crm-backend/internal/dto"
	"github.com/clientdesk/crm-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTaskRejectsCrossTenantClient(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestStore(t))
	tasks := NewTaskService(db)

	tenantA := seedTenant(t, db, "Acme", "acme")
	tenantB := seedTenant(t, db, "Globex", "globex")
	actorA := seedActor(t, db, tenantA, "a@acme.test")
	actorB := seedActor(t, db, tenantB, "b@globex.test")

	foreign, err := clients.Create(actorB, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)
	mine, err := clients.Create(actorA, clientReq("John", "Smith", "john@example.com"))
	require.NoError(t, err)

	// Create against another tenant's client reads as not-found.
	_, err = tasks.Create(actorA, &dto.TaskRequest{ClientID: foreign.ID, Title: "Call"})
	require.ErrorIs(t, err, ErrNotFound)

	// Same on update: re-pointing a task across tenants is rejected.
	task, err := tasks.Create(actorA, &dto.TaskRequest{ClientID: mine.ID, Title: "Call"})
	require.NoError(t, err)
	_, err = tasks.Update(actorA, task.ID, &dto.TaskRequest{ClientID: foreign.ID, Title: "Call"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTaskCompleteStampsCompletedAt(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestStore(t))
	tasks := NewTaskService(db)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")
	client, err := clients.Create(actor, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	task, err := tasks.Create(actor, &dto.TaskRequest{ClientID: client.ID, Title: "Call"})
	require.NoError(t, err)
	require.Nil(t, task.CompletedAt)

	before := time.Now()
	done, err := tasks.Complete(actor, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.TaskCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.False(t, done.CompletedAt.Before(before))

	// Reopening through a generic update leaves the stale timestamp.
	reopened, err := tasks.Update(actor, task.ID, &dto.TaskRequest{
		ClientID: client.ID, Title: "Call", Status: models.TaskInProgress,
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskInProgress, reopened.Status)
	require.NotNil(t, reopened.CompletedAt)
}

func TestTaskOverdueAndDueTodayDerivation(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestStore(t))
	tasks := NewTaskService(db)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")
	client, err := clients.Create(actor, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	task, err := tasks.Create(actor, &dto.TaskRequest{ClientID: client.ID, Title: "Call", DueDate: &past})
	require.NoError(t, err)
	require.True(t, task.IsOverdue())
	require.False(t, task.IsDueToday())

	// Completion flips overdue off even with the due date in the past.
	done, err := tasks.Complete(actor, task.ID)
	require.NoError(t, err)
	require.False(t, done.IsOverdue())

	soon := time.Now().Add(time.Minute)
	today, err := tasks.Create(actor, &dto.TaskRequest{ClientID: client.ID, Title: "Ping", DueDate: &soon})
	require.NoError(t, err)
	require.True(t, today.IsDueToday())
	require.False(t, today.IsOverdue())

	noDue, err := tasks.Create(actor, &dto.TaskRequest{ClientID: client.ID, Title: "Someday"})
	require.NoError(t, err)
	require.False(t, noDue.IsOverdue())
	require.False(t, noDue.IsDueToday())
}

func TestTaskCommentsOrderedAscendingAndGuarded(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestStore(t))
	tasks := NewTaskService(db)

	tenantA := seedTenant(t, db, "Acme", "acme")
	tenantB := seedTenant(t, db, "Globex", "globex")
	actorA := seedActor(t, db, tenantA, "a@acme.test")
	actorB := seedActor(t, db, tenantB, "b@globex.test")

	client, err := clients.Create(actorA, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)
	task, err := tasks.Create(actorA, &dto.TaskRequest{ClientID: client.ID, Title: "Call"})
	require.NoError(t, err)

	first, err := tasks.AddComment(actorA, task.ID, "first")
	require.NoError(t, err)
	_, err = tasks.AddComment(actorA, task.ID, "second")
	require.NoError(t, err)

	list, err := tasks.Comments(actorA, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, "first", list[0].Content)
	require.Equal(t, "Test User", list[0].Author)

	// Another tenant can neither read nor extend the thread.
	_, err = tasks.Comments(actorB, task.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = tasks.AddComment(actorB, task.ID, "intruder")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = tasks.AddComment(actorA, task.ID, "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "content", vErr.Field)
}

func TestTaskAssigneeMustBelongToTenant(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestStore(t))
	tasks := NewTaskService(db)

	tenantA := seedTenant(t, db, "Acme", "acme")
	tenantB := seedTenant(t, db, "Globex", "globex")
	actorA := seedActor(t, db, tenantA, "a@acme.test")
	actorB := seedActor(t, db, tenantB, "b@globex.test")

	client, err := clients.Create(actorA, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	outsider := actorB.UserID
	_, err = tasks.Create(actorA, &dto.TaskRequest{ClientID: client.ID, Title: "Call", AssignedToID: &outsider})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "assigned_to_id", vErr.Field)

	member := actorA.UserID
	task, err := tasks.Create(actorA, &dto.TaskRequest{ClientID: client.ID, Title: "Call", AssignedToID: &member})
	require.NoError(t, err)
	require.Equal(t, member, *task.AssignedToID)
}

func TestTaskListFiltersAndStats(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestStore(t))
	tasks := NewTaskService(db)

	ten := seedTenant(t, db, "Acme", "acme")
	actor := seedActor(t, db, ten, "a@acme.test")
	client, err := clients.Create(actor, clientReq("Jane", "Doe", "jane@example.com"))
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	_, err = tasks.Create(actor, &dto.TaskRequest{ClientID: client.ID, Title: "Overdue call", DueDate: &past})
	require.NoError(t, err)
	_, err = tasks.Create(actor, &dto.TaskRequest{ClientID: client.ID, Title: "Send invoice", Priority: models.PriorityUrgent})
	require.NoError(t, err)
	done, err := tasks.Create(actor, &dto.TaskRequest{ClientID: client.ID, Title: "Archive notes"})
	require.NoError(t, err)
	_, err = tasks.Complete(actor, done.ID)
	require.NoError(t, err)

	all, err := tasks.List(actor, dto.TaskFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), all.Stats.Total)
	require.Equal(t, int64(2), all.Stats.Pending)
	require.Equal(t, int64(1), all.Stats.Overdue)

	urgent, err := tasks.List(actor, dto.TaskFilter{Priority: models.PriorityUrgent})
	require.NoError(t, err)
	require.Len(t, urgent.Tasks, 1)
	require.Equal(t, "Send invoice", urgent.Tasks[0].Title)

	// Search also matches the client's name.
	byClient, err := tasks.List(actor, dto.TaskFilter{Search: "doe"})
	require.NoError(t, err)
	require.Equal(t, int64(3), byClient.Stats.Total)
}
