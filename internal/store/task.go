package store

import (
	"time"

	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// upcomingWindow is how far ahead GetUpcomingDeadlines looks.
const upcomingWindow = 7 * 24 * time.Hour

// AddTask appends a task. The project id is not validated against the
// projects collection; imports may reference projects created later.
func (s *Store) AddTask(t model.Task) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	if t.Status == "" {
		t.Status = model.StatusToDo
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	if t.Files == nil {
		t.Files = []model.TaskFile{}
	}

	s.state.Tasks = append(s.state.Tasks, t)
	s.persist()
	return t
}

// UpdateTask applies a partial patch. Unknown id is a no-op returning nil.
func (s *Store) UpdateTask(taskID string, patch model.TaskPatch) *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		t := &s.state.Tasks[i]
		if t.ID != taskID {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.AssigneeID != nil {
			t.AssigneeID = *patch.AssigneeID
		}
		if patch.ProjectID != nil {
			t.ProjectID = *patch.ProjectID
		}
		if patch.Labels != nil {
			t.Labels = *patch.Labels
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		t.UpdatedAt = s.now()
		s.persist()
		out := *t
		return &out
	}
	return nil
}

// DeleteTask removes the task and cascades to its comments. Idempotent.
func (s *Store) DeleteTask(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.state.Tasks[:0]
	for _, t := range s.state.Tasks {
		if t.ID != taskID {
			tasks = append(tasks, t)
		}
	}
	s.state.Tasks = tasks

	comments := s.state.Comments[:0]
	for _, c := range s.state.Comments {
		if c.TaskID != taskID {
			comments = append(comments, c)
		}
	}
	s.state.Comments = comments

	s.persist()
}

func (s *Store) GetTaskByID(taskID string) *model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == taskID {
			out := s.state.Tasks[i]
			return &out
		}
	}
	return nil
}

func (s *Store) ListTasksByProject(projectID string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasksByProject(projectID)
}

func (s *Store) tasksByProject(projectID string) []model.Task {
	out := []model.Task{}
	for _, t := range s.state.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) ChangeTaskStatus(taskID string, status model.Status) *model.Task {
	return s.UpdateTask(taskID, model.TaskPatch{Status: &status})
}

func (s *Store) AddLabelToTask(taskID, label string) *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		t := &s.state.Tasks[i]
		if t.ID != taskID {
			continue
		}
		t.Labels = append(t.Labels, label)
		t.UpdatedAt = s.now()
		s.persist()
		out := *t
		return &out
	}
	return nil
}

func (s *Store) SetTaskDeadline(taskID string, due time.Time) *model.Task {
	return s.UpdateTask(taskID, model.TaskPatch{DueDate: &due})
}

// AttachFileToTask records an uploaded file against the task.
func (s *Store) AttachFileToTask(taskID string, f model.TaskFile) *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		t := &s.state.Tasks[i]
		if t.ID != taskID {
			continue
		}
		if f.ID == "" {
			f.ID = s.newID()
		}
		f.TaskID = taskID
		if f.CreatedAt.IsZero() {
			f.CreatedAt = s.now()
		}
		t.Files = append(t.Files, f)
		t.UpdatedAt = s.now()
		s.persist()
		out := *t
		return &out
	}
	return nil
}

// ListOverdueTasks returns the project's tasks past due and not done.
func (s *Store) ListOverdueTasks(projectID string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := []model.Task{}
	for _, t := range s.state.Tasks {
		if t.ProjectID == projectID && t.Status != model.StatusDone && t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	return out
}

// GetUpcomingDeadlines returns unfinished tasks due within the next week.
func (s *Store) GetUpcomingDeadlines(projectID string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	limit := now.Add(upcomingWindow)
	out := []model.Task{}
	for _, t := range s.state.Tasks {
		if t.ProjectID != projectID || t.Status == model.StatusDone {
			continue
		}
		if !t.DueDate.Before(now) && !t.DueDate.After(limit) {
			out = append(out, t)
		}
	}
	return out
}
