package model

import "time"

// Comment is owned by its task and is removed when the task is deleted.
// Mentions hold user ids extracted from @name tokens in the content.
type Comment struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	UserID      string    `json:"userId"`
	TaskID      string    `json:"taskId"`
	Mentions    []string  `json:"mentions"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
