package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/storage"
)

func newTestStore(opts ...Option) (*Store, *storage.Codec) {
	codec := storage.NewCodec(storage.NewMemoryKV(), "test", zerolog.Nop())
	return New(codec, zerolog.Nop(), opts...), codec
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestNewSeedsWhenNoSnapshot(t *testing.T) {
	s, _ := newTestStore()

	state := s.State()
	require.Len(t, state.Projects, 2)
	require.Len(t, state.Tasks, 3)
	require.Len(t, state.Users, 3)
	assert.Equal(t, "Website Redesign", state.Projects[0].Name)
	assert.Equal(t, "Sarah Chen", state.Users[0].Name)
}

func TestNewHydratesFromSnapshot(t *testing.T) {
	s, codec := newTestStore()
	created := s.AddProject(model.Project{Name: "Infra Migration"})

	reloaded := New(codec, zerolog.Nop())
	got := reloaded.GetProjectByID(created.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Infra Migration", got.Name)
}

func TestAddProjectFillsIdentityAndTimestamps(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s, _ := newTestStore(
		WithClock(func() time.Time { return now }),
		WithIDGenerator(sequentialIDs()),
	)

	p := s.AddProject(model.Project{Name: "New Project"})
	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	assert.NotNil(t, p.TeamIDs)
	assert.NotNil(t, p.CustomStatuses)
}

func TestUpdateProjectAppliesPartialPatch(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s, _ := newTestStore(WithClock(func() time.Time { return now }))

	name := "Website Relaunch"
	status := model.ProjectCompleted
	updated := s.UpdateProject("1", model.ProjectPatch{Name: &name, Status: &status})
	require.NotNil(t, updated)
	assert.Equal(t, "Website Relaunch", updated.Name)
	assert.Equal(t, model.ProjectCompleted, updated.Status)
	assert.Equal(t, now, updated.UpdatedAt)

	// Untouched fields survive
	assert.Equal(t, "Complete overhaul of company website with modern design", updated.Description)
}

func TestUpdateProjectUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore()
	name := "ghost"
	assert.Nil(t, s.UpdateProject("nope", model.ProjectPatch{Name: &name}))
}

func TestDeleteProjectCascadesTasksAndComments(t *testing.T) {
	s, _ := newTestStore()
	s.AddCommentToTask("task-1", model.Comment{UserID: "user-2", Content: "looks good"})
	s.AddCommentToTask("task-3", model.Comment{UserID: "user-3", Content: "other project"})

	s.DeleteProject("1")

	assert.Nil(t, s.GetProjectByID("1"))
	assert.Empty(t, s.ListTasksByProject("1"))
	assert.Empty(t, s.ListComments("task-1"))
	// Project 2 and its task's comment are untouched
	assert.NotNil(t, s.GetProjectByID("2"))
	assert.Len(t, s.ListComments("task-3"), 1)
}

func TestDeleteProjectIsIdempotent(t *testing.T) {
	s, _ := newTestStore()
	s.DeleteProject("1")
	s.DeleteProject("1")
	assert.Len(t, s.ListProjects(model.ProjectFilter{}), 1)
}

func TestListProjectsFilters(t *testing.T) {
	s, _ := newTestStore()

	active := s.ListProjects(model.ProjectFilter{Status: model.ProjectActive})
	require.Len(t, active, 1)
	assert.Equal(t, "1", active[0].ID)

	byMember := s.ListProjects(model.ProjectFilter{TeamID: "user-3"})
	require.Len(t, byMember, 1)
	assert.Equal(t, "2", byMember[0].ID)
}

func TestAssignUserToProjectDeduplicates(t *testing.T) {
	s, _ := newTestStore()

	p := s.AssignUserToProject("1", "user-3")
	require.NotNil(t, p)
	assert.Equal(t, []string{"user-1", "user-2", "user-3"}, p.TeamIDs)

	p = s.AssignUserToProject("1", "user-3")
	require.NotNil(t, p)
	assert.Equal(t, []string{"user-1", "user-2", "user-3"}, p.TeamIDs)

	assert.Nil(t, s.AssignUserToProject("nope", "user-1"))
}

func TestAddTaskDefaults(t *testing.T) {
	s, _ := newTestStore(WithIDGenerator(sequentialIDs()))

	task := s.AddTask(model.Task{Title: "Write docs", ProjectID: "1"})
	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, model.StatusToDo, task.Status)
	assert.NotNil(t, task.Labels)
	assert.NotNil(t, task.Files)
}

func TestDeleteTaskCascadesComments(t *testing.T) {
	s, _ := newTestStore()
	s.AddCommentToTask("task-1", model.Comment{UserID: "user-2", Content: "wip"})

	s.DeleteTask("task-1")
	assert.Nil(t, s.GetTaskByID("task-1"))
	assert.Empty(t, s.ListComments("task-1"))
}

func TestChangeTaskStatusAndDeadline(t *testing.T) {
	s, _ := newTestStore()

	task := s.ChangeTaskStatus("task-1", model.StatusDone)
	require.NotNil(t, task)
	assert.Equal(t, model.StatusDone, task.Status)

	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	task = s.SetTaskDeadline("task-1", due)
	require.NotNil(t, task)
	assert.Equal(t, due, task.DueDate)
}

func TestAttachFileToTask(t *testing.T) {
	s, _ := newTestStore(WithIDGenerator(sequentialIDs()))

	task := s.AttachFileToTask("task-1", model.TaskFile{Name: "spec.pdf", Size: 1024})
	require.NotNil(t, task)
	require.Len(t, task.Files, 1)
	assert.Equal(t, "id-1", task.Files[0].ID)
	assert.Equal(t, "task-1", task.Files[0].TaskID)
}

func TestOverdueAndUpcomingWindows(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(WithClock(func() time.Time { return now }))

	// task-1 is In Progress and was due Jan 15; task-2 is Done and ignored.
	overdue := s.ListOverdueTasks("1")
	require.Len(t, overdue, 1)
	assert.Equal(t, "task-1", overdue[0].ID)

	s.AddTask(model.Task{
		Title:     "Ship landing page",
		ProjectID: "1",
		DueDate:   now.Add(3 * 24 * time.Hour),
	})
	s.AddTask(model.Task{
		Title:     "Next quarter planning",
		ProjectID: "1",
		DueDate:   now.Add(10 * 24 * time.Hour),
	})

	upcoming := s.GetUpcomingDeadlines("1")
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Ship landing page", upcoming[0].Title)
}

func TestUserCRUDAndRoles(t *testing.T) {
	s, _ := newTestStore(WithIDGenerator(sequentialIDs()))

	u := s.CreateUser(model.User{Name: "Dana Fox", Email: "dana.fox@example.com"})
	assert.Equal(t, model.RoleStaff, u.Role)

	promoted := s.AssignRole(u.ID, model.RoleManager)
	require.NotNil(t, promoted)
	assert.Equal(t, model.RoleManager, promoted.Role)

	managers := s.ListUsersByRole(model.RoleManager)
	assert.Len(t, managers, 2) // Sarah Chen plus Dana Fox

	s.DeleteUser(u.ID)
	assert.Nil(t, s.GetUserByID(u.ID))
	// Deleting a user leaves referencing tasks in place
	assert.NotNil(t, s.GetTaskByID("task-1"))
}

func TestAddCommentFansOutMentionNotifications(t *testing.T) {
	s, _ := newTestStore()

	c := s.AddCommentToTask("task-1", model.Comment{
		UserID:   "user-1",
		Content:  "@mike.johnson can you review? cc @alexkim",
		Mentions: nil,
	})
	assert.ElementsMatch(t, []string{"user-2", "user-3"}, c.Mentions)

	for _, userID := range []string{"user-2", "user-3"} {
		notifs := s.GetUserNotifications(userID)
		require.Len(t, notifs, 1)
		assert.Equal(t, model.NotificationMention, notifs[0].Type)
		assert.Equal(t, "task-1", notifs[0].Data.TaskID)
		assert.Equal(t, c.ID, notifs[0].Data.CommentID)
		assert.False(t, notifs[0].Read)
	}
}

func TestAddCommentExplicitMentionsSkipResolution(t *testing.T) {
	s, _ := newTestStore()

	c := s.AddCommentToTask("task-1", model.Comment{
		UserID:   "user-1",
		Content:  "@mike.johnson ping",
		Mentions: []string{"user-3"},
	})
	assert.Equal(t, []string{"user-3"}, c.Mentions)
	assert.Empty(t, s.GetUserNotifications("user-2"))
	assert.Len(t, s.GetUserNotifications("user-3"), 1)
}

func TestSendProjectDeadlineReminder(t *testing.T) {
	s, _ := newTestStore()

	s.SendProjectDeadlineReminder("1")
	assert.Len(t, s.GetUserNotifications("user-1"), 1)
	assert.Len(t, s.GetUserNotifications("user-2"), 1)
	assert.Empty(t, s.GetUserNotifications("user-3"))

	// Missing project is a no-op, not an error
	s.SendProjectDeadlineReminder("nope")
}

func TestMarkNotificationAsRead(t *testing.T) {
	s, _ := newTestStore()

	n := s.SendNotificationToUser("user-1", model.Notification{
		Type:    model.NotificationSystem,
		Title:   "Maintenance window",
		Message: "Scheduled downtime on Saturday",
	})

	updated := s.MarkNotificationAsRead(n.ID)
	require.NotNil(t, updated)
	assert.True(t, updated.Read)

	assert.Nil(t, s.MarkNotificationAsRead("nope"))
}

func TestCheckOutClosesAllOpenRecords(t *testing.T) {
	s, _ := newTestStore()

	morning := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s.RecordCheckIn("user-1", "1", morning)
	s.RecordCheckIn("user-1", "2", morning.Add(time.Hour))
	s.RecordCheckIn("user-2", "1", morning)

	closed := s.RecordCheckOut("user-1", morning.Add(8*time.Hour))
	require.Len(t, closed, 2)
	for _, a := range closed {
		require.NotNil(t, a.CheckOut)
	}

	// user-2 remains checked in
	open := s.ListAttendanceForUser("user-2")
	require.Len(t, open, 1)
	assert.Nil(t, open[0].CheckOut)

	// A second check-out closes nothing
	assert.Empty(t, s.RecordCheckOut("user-1", morning.Add(9*time.Hour)))
}

func TestGetAttendanceByDate(t *testing.T) {
	s, _ := newTestStore()

	s.RecordCheckIn("user-1", "1", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	s.RecordCheckIn("user-1", "1", time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))

	day := s.GetAttendanceByDate("user-1", time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC))
	require.Len(t, day, 1)
	assert.Equal(t, 4, day[0].CheckIn.Day())
}

func TestCustomTaxonomy(t *testing.T) {
	s, _ := newTestStore(WithIDGenerator(sequentialIDs()))

	first := s.CreateCustomStatus("1", "In Review", "#f59e0b")
	second := s.CreateCustomStatus("1", "Blocked", "#ef4444")
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)

	s.AddTaskLabel("urgent", "#dc2626")
	s.CreateReportCategory("Velocity", "Sprint throughput", []string{"tasksCompleted"})

	statuses, ok := s.ListCustomOptions(model.OptionStatus).([]model.CustomStatus)
	require.True(t, ok)
	assert.Len(t, statuses, 2)

	labels, ok := s.ListCustomOptions(model.OptionLabel).([]model.CustomLabel)
	require.True(t, ok)
	assert.Len(t, labels, 1)

	categories, ok := s.ListCustomOptions(model.OptionReport).([]model.ReportCategory)
	require.True(t, ok)
	require.Len(t, categories, 1)
	assert.NotNil(t, categories[0].Metrics)
}

func TestResetDemoData(t *testing.T) {
	s, codec := newTestStore()
	s.DeleteProject("1")
	s.DeleteProject("2")
	require.Empty(t, s.ListProjects(model.ProjectFilter{}))

	s.ResetDemoData()
	assert.Len(t, s.ListProjects(model.ProjectFilter{}), 2)

	reloaded := New(codec, zerolog.Nop())
	assert.Len(t, reloaded.ListProjects(model.ProjectFilter{}), 2)
}

func TestStateSnapshotSurvivesLaterDeletes(t *testing.T) {
	s, _ := newTestStore()

	snap := s.State()
	require.Len(t, snap.Tasks, 3)
	require.Len(t, snap.Projects, 2)

	s.DeleteTask("task-1")
	s.DeleteProject("2")

	assert.Equal(t, "task-1", snap.Tasks[0].ID)
	assert.Len(t, snap.Tasks, 3)
	assert.Equal(t, "2", snap.Projects[1].ID)

	// The live state did move on
	assert.Nil(t, s.GetTaskByID("task-1"))
	assert.Nil(t, s.GetProjectByID("2"))
}

func TestTaskUnderMissingProjectIsKept(t *testing.T) {
	s, _ := newTestStore()

	task := s.AddTask(model.Task{Title: "Imported ahead of its project", ProjectID: "ghost"})
	require.NotNil(t, s.GetTaskByID(task.ID))

	byProject := s.ListTasksByProject("ghost")
	require.Len(t, byProject, 1)
	assert.Equal(t, task.ID, byProject[0].ID)

	// Derived queries over the missing project stay strict
	_, err := s.GetProjectProgress("ghost")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = s.GenerateWeeklySummary("ghost")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMutationsSurviveReload(t *testing.T) {
	s, codec := newTestStore()

	task := s.AddTask(model.Task{Title: "Deploy staging", ProjectID: "2"})
	s.ChangeTaskStatus(task.ID, model.StatusInProgress)

	reloaded := New(codec, zerolog.Nop())
	got := reloaded.GetTaskByID(task.ID)
	require.NotNil(t, got)
	assert.Equal(t, model.StatusInProgress, got.Status)
}
