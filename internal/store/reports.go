package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// CustomReportOptions are the caller-supplied fields for CreateCustomReport.
type CustomReportOptions struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        string             `json:"type"`
	Period      model.ReportPeriod `json:"period"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     time.Time          `json:"endDate"`
	Format      model.ReportFormat `json:"format"`
}

// ReportData is the caller-supplied content for CreateReport. The store
// only gives it identity and persistence; it never computes chart or table
// content itself.
type ReportData struct {
	Title       string               `json:"title"`
	Type        string               `json:"type"`
	Description string               `json:"description"`
	Data        json.RawMessage      `json:"data"`
	Metadata    model.ReportMetadata `json:"metadata"`
	Settings    model.ReportSettings `json:"settings"`
}

// GetProjectProgress is the percentage of the project's tasks that are
// done, 0 for a project with no tasks.
func (s *Store) GetProjectProgress(projectID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.requireProject(projectID); err != nil {
		return 0, err
	}

	tasks := s.tasksByProject(projectID)
	if len(tasks) == 0 {
		return 0, nil
	}
	done := 0
	for _, t := range tasks {
		if t.Status == model.StatusDone {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100, nil
}

// GenerateWeeklySummary reports on the trailing 7 days of a project.
func (s *Store) GenerateWeeklySummary(projectID string) (*model.WeeklySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, err := s.requireProject(projectID)
	if err != nil {
		return nil, err
	}

	end := s.now()
	start := end.Add(-7 * 24 * time.Hour)

	tasks := s.tasksByProject(projectID)
	done := []model.Task{}
	for _, t := range tasks {
		if t.Status == model.StatusDone {
			done = append(done, t)
		}
	}

	progress := 0.0
	if len(tasks) > 0 {
		progress = float64(len(done)) / float64(len(tasks)) * 100
	}

	metrics := model.TaskMetrics{}
	for _, t := range tasks {
		if inWindow(t.CreatedAt, start, end) {
			metrics.Created++
		}
		if t.Status != model.StatusDone && t.DueDate.Before(end) {
			metrics.Overdue++
		}
	}
	for _, t := range done {
		if inWindow(t.UpdatedAt, start, end) {
			metrics.Completed++
		}
	}

	team := []model.MemberWeekStats{}
	for _, userID := range project.TeamIDs {
		stats := model.MemberWeekStats{UserID: userID}
		for _, t := range done {
			if t.AssigneeID == userID {
				stats.TasksCompleted++
			}
		}
		for _, a := range s.state.Attendance {
			if a.UserID == userID && a.ProjectID == projectID &&
				a.CheckOut != nil && inWindow(a.CheckIn, start, end) {
				stats.HoursWorked += hoursBetween(a)
			}
		}
		team = append(team, stats)
	}

	return &model.WeeklySummary{
		ProjectID:       projectID,
		StartDate:       start,
		EndDate:         end,
		Progress:        progress,
		TaskMetrics:     metrics,
		TeamPerformance: team,
	}, nil
}

// GeneratePerformanceReport reports on one user over the trailing window
// implied by the period tag: 1 day (Daily), 7 days (Weekly), 30 days
// (Monthly). All averages and ratios are 0 when their denominator is 0.
func (s *Store) GeneratePerformanceReport(userID string, period model.ReportPeriod) (*model.PerformanceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.requireUser(userID); err != nil {
		return nil, err
	}

	end := s.now()
	var start time.Time
	switch period {
	case model.PeriodWeekly:
		start = end.Add(-7 * 24 * time.Hour)
	case model.PeriodMonthly:
		start = end.Add(-30 * 24 * time.Hour)
	default:
		start = end.Add(-24 * time.Hour)
	}

	userTasks := []model.Task{}
	completed := []model.Task{}
	inProgress := 0
	for _, t := range s.state.Tasks {
		if t.AssigneeID != userID {
			continue
		}
		userTasks = append(userTasks, t)
		switch t.Status {
		case model.StatusDone:
			completed = append(completed, t)
		case model.StatusInProgress:
			inProgress++
		}
	}

	metrics := model.PerformanceMetrics{
		TasksCompleted:  len(completed),
		TasksInProgress: inProgress,
	}
	if len(completed) > 0 {
		totalHours := 0.0
		onTime := 0
		for _, t := range completed {
			totalHours += t.UpdatedAt.Sub(t.CreatedAt).Hours()
			if !t.UpdatedAt.After(t.DueDate) {
				onTime++
			}
		}
		metrics.AvgCompletionTime = totalHours / float64(len(completed))
		metrics.OnTimeDelivery = float64(onTime) / float64(len(completed)) * 100
	}

	windowed := []model.Attendance{}
	for _, a := range s.state.Attendance {
		if a.UserID == userID && a.CheckOut != nil && inWindow(a.CheckIn, start, end) {
			windowed = append(windowed, a)
		}
	}
	attendance := model.AttendanceStats{DaysPresent: len(windowed)}
	for _, a := range windowed {
		attendance.TotalHours += hoursBetween(a)
	}
	if len(windowed) > 0 {
		attendance.AvgHoursPerDay = attendance.TotalHours / float64(len(windowed))
	}

	contributions := []model.ProjectContribution{}
	for _, p := range s.state.Projects {
		if !contains(p.TeamIDs, userID) {
			continue
		}
		c := model.ProjectContribution{ProjectID: p.ID}
		for _, t := range completed {
			if t.ProjectID == p.ID {
				c.TasksCompleted++
			}
		}
		for _, a := range windowed {
			if a.ProjectID == p.ID {
				c.HoursContributed += hoursBetween(a)
			}
		}
		contributions = append(contributions, c)
	}

	return &model.PerformanceReport{
		UserID:        userID,
		Period:        period,
		StartDate:     start,
		EndDate:       end,
		Metrics:       metrics,
		Attendance:    attendance,
		Contributions: contributions,
	}, nil
}

// SubmitDailyReport stores a caller-computed daily summary as a report.
func (s *Store) SubmitDailyReport(data model.DailyReport) model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	raw, _ := json.Marshal(data)
	day, err := time.Parse("2006-01-02", data.Date)
	if err != nil {
		day = now
	}
	report := model.Report{
		ID:          s.newID(),
		Type:        "Daily",
		Title:       fmt.Sprintf("Daily Report - %s", data.Date),
		Description: "Daily project and team performance summary",
		Data:        raw,
		Format:      model.FormatPDF,
		Period:      model.PeriodDaily,
		StartDate:   day,
		EndDate:     day,
		CreatedBy:   "system",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.state.Reports = append(s.state.Reports, report)
	s.persist()
	return report
}

// CreateCustomReport stores a report shell from caller-supplied fields; the
// data payload is left empty for the consumer to fill.
func (s *Store) CreateCustomReport(opts CustomReportOptions) model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	report := model.Report{
		ID:          s.newID(),
		Type:        opts.Type,
		Title:       opts.Title,
		Description: opts.Description,
		Format:      opts.Format,
		Period:      opts.Period,
		StartDate:   opts.StartDate,
		EndDate:     opts.EndDate,
		CreatedBy:   "system",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.state.Reports = append(s.state.Reports, report)
	s.persist()
	return report
}

// CreateReport stores a fully caller-supplied report, payload included.
func (s *Store) CreateReport(data ReportData) model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	metadata := data.Metadata
	settings := data.Settings
	report := model.Report{
		ID:          s.newID(),
		Type:        data.Type,
		Title:       data.Title,
		Description: data.Description,
		Data:        data.Data,
		Format:      model.FormatPDF,
		Period:      model.PeriodCustom,
		StartDate:   now,
		EndDate:     now,
		CreatedBy:   data.Metadata.Author,
		CreatedAt:   now,
		UpdatedAt:   now,
		Metadata:    &metadata,
		Settings:    &settings,
	}
	s.state.Reports = append(s.state.Reports, report)
	s.persist()
	return report
}

func (s *Store) GetReportByID(reportID string) *model.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.state.Reports {
		if s.state.Reports[i].ID == reportID {
			out := s.state.Reports[i]
			return &out
		}
	}
	return nil
}

// UpdateReport applies a partial patch. Unknown id is a no-op returning nil.
func (s *Store) UpdateReport(reportID string, patch model.ReportPatch) *model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Reports {
		r := &s.state.Reports[i]
		if r.ID != reportID {
			continue
		}
		if patch.Type != nil {
			r.Type = *patch.Type
		}
		if patch.Title != nil {
			r.Title = *patch.Title
		}
		if patch.Description != nil {
			r.Description = *patch.Description
		}
		if patch.Data != nil {
			r.Data = patch.Data
		}
		if patch.Format != nil {
			r.Format = *patch.Format
		}
		if patch.Period != nil {
			r.Period = *patch.Period
		}
		if patch.StartDate != nil {
			r.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			r.EndDate = *patch.EndDate
		}
		if patch.Metadata != nil {
			r.Metadata = patch.Metadata
		}
		if patch.Settings != nil {
			r.Settings = patch.Settings
		}
		r.UpdatedAt = s.now()
		s.persist()
		out := *r
		return &out
	}
	return nil
}

// DeleteReport removes the report. Idempotent.
func (s *Store) DeleteReport(reportID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := s.state.Reports[:0]
	for _, r := range s.state.Reports {
		if r.ID != reportID {
			reports = append(reports, r)
		}
	}
	s.state.Reports = reports
	s.persist()
}

func (s *Store) ListReports(filter model.ReportFilter) []model.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Report{}
	for _, r := range s.state.Reports {
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.Author != "" && r.CreatedBy != filter.Author {
			continue
		}
		if filter.DateStart != nil && r.CreatedAt.Before(*filter.DateStart) {
			continue
		}
		if filter.DateEnd != nil && r.CreatedAt.After(*filter.DateEnd) {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(r, filter.Tags) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasAnyTag(r model.Report, tags []string) bool {
	if r.Metadata == nil {
		return false
	}
	for _, want := range tags {
		for _, have := range r.Metadata.Tags {
			if want == have {
				return true
			}
		}
	}
	return false
}

func inWindow(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}
