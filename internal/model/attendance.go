package model

import "time"

// Attendance is one check-in/check-out pair for a user on a project.
// CheckOut is nil while the record is still open.
type Attendance struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	ProjectID string     `json:"projectId"`
	CheckIn   time.Time  `json:"checkIn"`
	CheckOut  *time.Time `json:"checkOut"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
