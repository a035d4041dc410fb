package model

import "time"

type CustomOptionKind string

const (
	OptionStatus CustomOptionKind = "status"
	OptionLabel  CustomOptionKind = "label"
	OptionReport CustomOptionKind = "report"
)

// CustomStatus is a project-scoped kanban column definition.
type CustomStatus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	ProjectID string    `json:"projectId"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomLabel is a globally scoped task label definition.
type CustomLabel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReportCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Metrics     []string  `json:"metrics"`
	CreatedAt   time.Time `json:"createdAt"`
}
