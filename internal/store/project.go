package store

import (
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// AddProject appends a project, generating id and timestamps when the
// caller left them empty. No uniqueness validation beyond the id.
func (s *Store) AddProject(p model.Project) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.TeamIDs == nil {
		p.TeamIDs = []string{}
	}
	if p.CustomStatuses == nil {
		p.CustomStatuses = []model.CustomStatus{}
	}

	s.state.Projects = append(s.state.Projects, p)
	s.persist()
	return p
}

// UpdateProject applies a partial patch. Unknown id is a no-op returning nil.
func (s *Store) UpdateProject(projectID string, patch model.ProjectPatch) *model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Projects {
		p := &s.state.Projects[i]
		if p.ID != projectID {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.StartDate != nil {
			p.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			p.EndDate = *patch.EndDate
		}
		if patch.TeamIDs != nil {
			p.TeamIDs = *patch.TeamIDs
		}
		p.UpdatedAt = s.now()
		s.persist()
		out := *p
		return &out
	}
	return nil
}

// DeleteProject removes the project and cascades to its tasks and their
// comments. Idempotent: a missing id is a no-op.
func (s *Store) DeleteProject(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.state.Projects[:0]
	for _, p := range s.state.Projects {
		if p.ID != projectID {
			projects = append(projects, p)
		}
	}
	s.state.Projects = projects

	doomed := map[string]bool{}
	tasks := s.state.Tasks[:0]
	for _, t := range s.state.Tasks {
		if t.ProjectID == projectID {
			doomed[t.ID] = true
			continue
		}
		tasks = append(tasks, t)
	}
	s.state.Tasks = tasks

	comments := s.state.Comments[:0]
	for _, c := range s.state.Comments {
		if !doomed[c.TaskID] {
			comments = append(comments, c)
		}
	}
	s.state.Comments = comments

	s.persist()
}

func (s *Store) GetProjectByID(projectID string) *model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.state.Projects {
		if s.state.Projects[i].ID == projectID {
			out := s.state.Projects[i]
			return &out
		}
	}
	return nil
}

func (s *Store) ListProjects(filter model.ProjectFilter) []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Project{}
	for _, p := range s.state.Projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.TeamID != "" && !contains(p.TeamIDs, filter.TeamID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AssignUserToProject adds the user id to the project team. No-op on a
// missing project; the user id itself is not validated.
func (s *Store) AssignUserToProject(projectID, userID string) *model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Projects {
		p := &s.state.Projects[i]
		if p.ID != projectID {
			continue
		}
		if !contains(p.TeamIDs, userID) {
			p.TeamIDs = append(p.TeamIDs, userID)
		}
		p.UpdatedAt = s.now()
		s.persist()
		out := *p
		return &out
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
