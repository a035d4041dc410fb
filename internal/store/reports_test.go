package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

func TestGetProjectProgress(t *testing.T) {
	s, _ := newTestStore()

	// Seed project 1 holds one Done task out of two
	progress, err := s.GetProjectProgress("1")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, progress, 0.001)

	// Two of three done
	p := s.AddProject(model.Project{Name: "Q2 Launch"})
	for _, status := range []model.Status{model.StatusDone, model.StatusDone, model.StatusToDo} {
		s.AddTask(model.Task{Title: "step", ProjectID: p.ID, Status: status})
	}
	progress, err = s.GetProjectProgress(p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 66.667, progress, 0.001)

	// No tasks means zero, not a division error
	empty := s.AddProject(model.Project{Name: "Empty"})
	progress, err = s.GetProjectProgress(empty.ID)
	require.NoError(t, err)
	assert.Zero(t, progress)
}

func TestGetProjectProgressUnknownProject(t *testing.T) {
	s, _ := newTestStore()
	_, err := s.GetProjectProgress("nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGenerateWeeklySummary(t *testing.T) {
	now := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(WithClock(func() time.Time { return now }))

	checkIn := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	s.RecordCheckIn("user-2", "1", checkIn)
	s.RecordCheckOut("user-2", checkIn.Add(8*time.Hour))

	summary, err := s.GenerateWeeklySummary("1")
	require.NoError(t, err)

	assert.Equal(t, "1", summary.ProjectID)
	assert.InDelta(t, 50.0, summary.Progress, 0.001)
	// Both tasks of project 1 were created Jan 1, inside the trailing week
	assert.Equal(t, 2, summary.TaskMetrics.Created)
	assert.Equal(t, 1, summary.TaskMetrics.Completed)
	assert.Equal(t, 0, summary.TaskMetrics.Overdue)

	require.Len(t, summary.TeamPerformance, 2)
	byUser := map[string]model.MemberWeekStats{}
	for _, m := range summary.TeamPerformance {
		byUser[m.UserID] = m
	}
	assert.Equal(t, 0, byUser["user-1"].TasksCompleted)
	assert.Equal(t, 1, byUser["user-2"].TasksCompleted)
	assert.InDelta(t, 8.0, byUser["user-2"].HoursWorked, 0.001)
	assert.Zero(t, byUser["user-1"].HoursWorked)
}

func TestGenerateWeeklySummaryUnknownProject(t *testing.T) {
	s, _ := newTestStore()
	_, err := s.GenerateWeeklySummary("nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGeneratePerformanceReport(t *testing.T) {
	now := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(WithClock(func() time.Time { return now }))

	checkIn := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	s.RecordCheckIn("user-2", "1", checkIn)
	s.RecordCheckOut("user-2", checkIn.Add(6*time.Hour))

	report, err := s.GeneratePerformanceReport("user-2", model.PeriodWeekly)
	require.NoError(t, err)

	assert.Equal(t, model.PeriodWeekly, report.Period)
	// task-2 is user-2's only task, completed on time
	assert.Equal(t, 1, report.Metrics.TasksCompleted)
	assert.Equal(t, 0, report.Metrics.TasksInProgress)
	assert.InDelta(t, 100.0, report.Metrics.OnTimeDelivery, 0.001)

	assert.Equal(t, 1, report.Attendance.DaysPresent)
	assert.InDelta(t, 6.0, report.Attendance.TotalHours, 0.001)
	assert.InDelta(t, 6.0, report.Attendance.AvgHoursPerDay, 0.001)

	// user-2 belongs to both seed projects
	require.Len(t, report.Contributions, 2)
	assert.Equal(t, "1", report.Contributions[0].ProjectID)
	assert.Equal(t, 1, report.Contributions[0].TasksCompleted)
	assert.InDelta(t, 6.0, report.Contributions[0].HoursContributed, 0.001)
	assert.Equal(t, 0, report.Contributions[1].TasksCompleted)
}

func TestGeneratePerformanceReportZeroDenominators(t *testing.T) {
	s, _ := newTestStore()
	u := s.CreateUser(model.User{Name: "Idle User", Email: "idle@example.com"})

	report, err := s.GeneratePerformanceReport(u.ID, model.PeriodMonthly)
	require.NoError(t, err)
	assert.Zero(t, report.Metrics.AvgCompletionTime)
	assert.Zero(t, report.Metrics.OnTimeDelivery)
	assert.Zero(t, report.Attendance.AvgHoursPerDay)
	assert.Empty(t, report.Contributions)
}

func TestGeneratePerformanceReportUnknownUser(t *testing.T) {
	s, _ := newTestStore()
	_, err := s.GeneratePerformanceReport("nope", model.PeriodDaily)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGeneratePerformanceReportWindows(t *testing.T) {
	now := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(WithClock(func() time.Time { return now }))

	cases := []struct {
		period model.ReportPeriod
		days   int
	}{
		{model.PeriodDaily, 1},
		{model.PeriodWeekly, 7},
		{model.PeriodMonthly, 30},
	}
	for _, tc := range cases {
		report, err := s.GeneratePerformanceReport("user-1", tc.period)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(tc.days)*24*time.Hour, report.EndDate.Sub(report.StartDate))
	}
}

func TestSubmitDailyReport(t *testing.T) {
	now := time.Date(2024, 1, 16, 18, 0, 0, 0, time.UTC)
	s, _ := newTestStore(WithClock(func() time.Time { return now }))

	report := s.SubmitDailyReport(model.DailyReport{
		Date:           "2024-01-15",
		TotalTasks:     3,
		CompletedTasks: 1,
		ActiveUsers:    2,
	})

	assert.Equal(t, "Daily", report.Type)
	assert.Equal(t, "Daily Report - 2024-01-15", report.Title)
	assert.Equal(t, model.PeriodDaily, report.Period)
	assert.Equal(t, "system", report.CreatedBy)
	assert.Equal(t, 15, report.StartDate.Day())

	var payload model.DailyReport
	require.NoError(t, json.Unmarshal(report.Data, &payload))
	assert.Equal(t, 3, payload.TotalTasks)
}

func TestCreateCustomReport(t *testing.T) {
	s, _ := newTestStore()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	report := s.CreateCustomReport(CustomReportOptions{
		Title:  "January Review",
		Type:   "Monthly Review",
		Period:    model.PeriodCustom,
		Format:    model.FormatExcel,
		StartDate: start,
		EndDate:   end,
	})

	assert.Equal(t, model.FormatExcel, report.Format)
	assert.Empty(t, report.Data)
	assert.Equal(t, start, report.StartDate)
	require.NotNil(t, s.GetReportByID(report.ID))
}

func TestReportCRUDAndFiltering(t *testing.T) {
	s, _ := newTestStore()

	created := s.CreateReport(ReportData{
		Title: "Sprint Burndown",
		Type:  "Sprint",
		Data:  json.RawMessage(`{"points":[5,3,1]}`),
		Metadata: model.ReportMetadata{
			Author: "user-1",
			Tags:   []string{"sprint", "engineering"},
		},
		Settings: model.ReportSettings{Visibility: model.VisibilityTeam},
	})
	s.CreateReport(ReportData{
		Title:    "Budget Overview",
		Type:     "Finance",
		Metadata: model.ReportMetadata{Author: "user-2"},
	})

	byType := s.ListReports(model.ReportFilter{Type: "Sprint"})
	require.Len(t, byType, 1)
	assert.Equal(t, created.ID, byType[0].ID)

	byAuthor := s.ListReports(model.ReportFilter{Author: "user-2"})
	require.Len(t, byAuthor, 1)

	byTag := s.ListReports(model.ReportFilter{Tags: []string{"engineering"}})
	require.Len(t, byTag, 1)
	assert.Equal(t, created.ID, byTag[0].ID)

	title := "Sprint 12 Burndown"
	updated := s.UpdateReport(created.ID, model.ReportPatch{Title: &title})
	require.NotNil(t, updated)
	assert.Equal(t, title, updated.Title)
	assert.Nil(t, s.UpdateReport("nope", model.ReportPatch{Title: &title}))

	s.DeleteReport(created.ID)
	assert.Nil(t, s.GetReportByID(created.ID))
	assert.Len(t, s.ListReports(model.ReportFilter{}), 1)
}
