package store

import (
	"fmt"

	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// appendNotification stamps and stores a notification. Caller holds the
// lock and persists.
func (s *Store) appendNotification(userID string, n model.Notification) model.Notification {
	if n.ID == "" {
		n.ID = s.newID()
	}
	n.UserID = userID
	n.Read = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	s.state.Notifications = append(s.state.Notifications, n)
	return n
}

// SendNotificationToUser emits a notification targeted at one user.
func (s *Store) SendNotificationToUser(userID string, n model.Notification) model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.appendNotification(userID, n)
	s.persist()
	return out
}

// SendProjectDeadlineReminder emits one Deadline notification per team
// member of the project. A missing project is a tolerant no-op, matching
// the other write operations.
func (s *Store) SendProjectDeadlineReminder(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var project *model.Project
	for i := range s.state.Projects {
		if s.state.Projects[i].ID == projectID {
			project = &s.state.Projects[i]
			break
		}
	}
	if project == nil {
		return
	}

	for _, userID := range project.TeamIDs {
		s.appendNotification(userID, model.Notification{
			Type:    model.NotificationDeadline,
			Title:   "Project Deadline Reminder",
			Message: fmt.Sprintf("Project %q is due on %s", project.Name, project.EndDate.Format("2006-01-02")),
			Data:    model.NotificationData{ProjectID: projectID},
		})
	}
	s.persist()
}

func (s *Store) GetUserNotifications(userID string) []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Notification{}
	for _, n := range s.state.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationAsRead flips the read flag in place. Unknown id is a
// no-op returning nil.
func (s *Store) MarkNotificationAsRead(notificationID string) *model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notifications {
		n := &s.state.Notifications[i]
		if n.ID != notificationID {
			continue
		}
		n.Read = true
		s.persist()
		out := *n
		return &out
	}
	return nil
}
