package model

import (
	"encoding/json"
	"time"
)

type ReportFormat string

const (
	FormatPDF   ReportFormat = "PDF"
	FormatExcel ReportFormat = "Excel"
)

type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "Daily"
	PeriodWeekly  ReportPeriod = "Weekly"
	PeriodMonthly ReportPeriod = "Monthly"
	PeriodCustom  ReportPeriod = "Custom"
)

type ReportVisibility string

const (
	VisibilityPublic  ReportVisibility = "public"
	VisibilityPrivate ReportVisibility = "private"
	VisibilityTeam    ReportVisibility = "team"
)

type ReportMetadata struct {
	Author     string   `json:"author"`
	Department string   `json:"department"`
	Tags       []string `json:"tags"`
}

type ReportSchedule struct {
	Frequency string    `json:"frequency"`
	NextRun   time.Time `json:"nextRun"`
}

type ReportSettings struct {
	Visibility ReportVisibility `json:"visibility"`
	Schedule   *ReportSchedule  `json:"schedule,omitempty"`
}

// Report stores caller-supplied content: the Data payload may embed chart
// specs or imported tabular rows and is never interpreted by the store.
type Report struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
	Format      ReportFormat    `json:"format"`
	Period      ReportPeriod    `json:"period"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Metadata    *ReportMetadata `json:"metadata,omitempty"`
	Settings    *ReportSettings `json:"settings,omitempty"`
}

type ReportPatch struct {
	Type        *string          `json:"type,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Data        json.RawMessage  `json:"data,omitempty"`
	Format      *ReportFormat    `json:"format,omitempty"`
	Period      *ReportPeriod    `json:"period,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	Metadata    *ReportMetadata  `json:"metadata,omitempty"`
	Settings    *ReportSettings  `json:"settings,omitempty"`
}

// ReportFilter narrows ListReports. Zero values mean no filtering.
type ReportFilter struct {
	Type      string
	Author    string
	Tags      []string
	DateStart *time.Time
	DateEnd   *time.Time
}

// DailyReport is the caller-supplied payload for SubmitDailyReport.
type DailyReport struct {
	Date           string               `json:"date"`
	TotalTasks     int                  `json:"totalTasks"`
	CompletedTasks int                  `json:"completedTasks"`
	ActiveUsers    int                  `json:"activeUsers"`
	TasksByStatus  map[Status]int       `json:"tasksByStatus"`
	TasksByPrio    map[Priority]int     `json:"tasksByPriority"`
	Attendance     DailyAttendanceStats `json:"attendance"`
}

type DailyAttendanceStats struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	TotalHours float64 `json:"totalHours"`
}

// WeeklySummary is a derived report over the trailing 7 days of a project.
type WeeklySummary struct {
	ProjectID       string            `json:"projectId"`
	StartDate       time.Time         `json:"startDate"`
	EndDate         time.Time         `json:"endDate"`
	Progress        float64           `json:"progress"`
	TaskMetrics     TaskMetrics       `json:"taskMetrics"`
	TeamPerformance []MemberWeekStats `json:"teamPerformance"`
}

type TaskMetrics struct {
	Created   int `json:"created"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

type MemberWeekStats struct {
	UserID         string  `json:"userId"`
	TasksCompleted int     `json:"tasksCompleted"`
	HoursWorked    float64 `json:"hoursWorked"`
}

// PerformanceReport is a derived report over one user for a period.
type PerformanceReport struct {
	UserID        string                `json:"userId"`
	Period        ReportPeriod          `json:"period"`
	StartDate     time.Time             `json:"startDate"`
	EndDate       time.Time             `json:"endDate"`
	Metrics       PerformanceMetrics    `json:"metrics"`
	Attendance    AttendanceStats       `json:"attendance"`
	Contributions []ProjectContribution `json:"projectContributions"`
}

type PerformanceMetrics struct {
	TasksCompleted    int     `json:"tasksCompleted"`
	TasksInProgress   int     `json:"tasksInProgress"`
	AvgCompletionTime float64 `json:"avgCompletionTime"`
	OnTimeDelivery    float64 `json:"onTimeDelivery"`
}

type AttendanceStats struct {
	DaysPresent    int     `json:"daysPresent"`
	TotalHours     float64 `json:"totalHours"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
}

type ProjectContribution struct {
	ProjectID        string  `json:"projectId"`
	TasksCompleted   int     `json:"tasksCompleted"`
	HoursContributed float64 `json:"hoursContributed"`
}
