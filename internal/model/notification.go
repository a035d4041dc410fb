package model

import "time"

type NotificationType string

const (
	NotificationTask     NotificationType = "Task"
	NotificationProject  NotificationType = "Project"
	NotificationDeadline NotificationType = "Deadline"
	NotificationMention  NotificationType = "Mention"
	NotificationSystem   NotificationType = "System"
)

// NotificationData is the free-form payload attached to a notification.
type NotificationData struct {
	TaskID    string `json:"taskId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	CommentID string `json:"commentId,omitempty"`
}

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	UserID    string           `json:"userId"`
	Read      bool             `json:"read"`
	Data      NotificationData `json:"data"`
	CreatedAt time.Time        `json:"createdAt"`
}
