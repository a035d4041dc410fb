package model

// AppState is the full persisted snapshot of the domain store. Field names
// match the blob layout written by earlier versions of the application.
type AppState struct {
	Projects         []Project        `json:"projects"`
	Tasks            []Task           `json:"tasks"`
	Users            []User           `json:"users"`
	Comments         []Comment        `json:"comments"`
	Attendance       []Attendance     `json:"attendance"`
	Reports          []Report         `json:"reports"`
	Notifications    []Notification   `json:"notifications"`
	CustomStatuses   []CustomStatus   `json:"customStatuses"`
	CustomLabels     []CustomLabel    `json:"customLabels"`
	ReportCategories []ReportCategory `json:"reportCategories"`
}
