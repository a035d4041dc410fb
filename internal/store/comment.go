package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roksva123/go-projecthub-backend/internal/model"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.-]+)`)

// AddCommentToTask appends a comment and fans out one Mention notification
// per mentioned user id. When the caller supplies no mention list it is
// derived from @name tokens in the content, resolved against known users.
func (s *Store) AddCommentToTask(taskID string, c model.Comment) model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c.ID == "" {
		c.ID = s.newID()
	}
	c.TaskID = taskID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	if c.Mentions == nil {
		c.Mentions = s.resolveMentions(c.Content)
	}
	if c.Attachments == nil {
		c.Attachments = []string{}
	}

	s.state.Comments = append(s.state.Comments, c)

	for _, userID := range c.Mentions {
		s.appendNotification(userID, model.Notification{
			Type:    model.NotificationMention,
			Title:   "You were mentioned in a comment",
			Message: fmt.Sprintf("You were mentioned in a comment on task %s", taskID),
			Data:    model.NotificationData{TaskID: taskID, CommentID: c.ID},
		})
	}

	s.persist()
	return c
}

func (s *Store) ListComments(taskID string) []model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Comment{}
	for _, c := range s.state.Comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out
}

// DeleteComment removes a single comment. Idempotent.
func (s *Store) DeleteComment(commentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := s.state.Comments[:0]
	for _, c := range s.state.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	s.state.Comments = comments
	s.persist()
}

// resolveMentions matches @name tokens against user names (spaces
// stripped) and email local parts, case-insensitively. Caller holds the
// lock.
func (s *Store) resolveMentions(content string) []string {
	mentions := []string{}
	seen := map[string]bool{}
	for _, match := range mentionPattern.FindAllStringSubmatch(content, -1) {
		token := strings.ToLower(match[1])
		for _, u := range s.state.Users {
			name := strings.ToLower(strings.ReplaceAll(u.Name, " ", ""))
			local := strings.ToLower(strings.SplitN(u.Email, "@", 2)[0])
			if token != name && token != local {
				continue
			}
			if !seen[u.ID] {
				seen[u.ID] = true
				mentions = append(mentions, u.ID)
			}
		}
	}
	return mentions
}
