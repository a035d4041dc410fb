package model

import "time"

type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Task belongs to a project (weak reference, required at creation) and may
// be assigned to a user (weak reference, optional).
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	AssigneeID  string     `json:"assigneeId"`
	ProjectID   string     `json:"projectId"`
	Labels      []string   `json:"labels"`
	DueDate     time.Time  `json:"dueDate"`
	Files       []TaskFile `json:"files"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskFile struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	ProjectID   *string    `json:"projectId,omitempty"`
	Labels      *[]string  `json:"labels,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}
