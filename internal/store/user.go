package store

import (
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// CreateUser appends a team member. Duplicate emails are allowed; the
// store does not enforce business uniqueness.
func (s *Store) CreateUser(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if u.ID == "" {
		u.ID = s.newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if u.Role == "" {
		u.Role = model.RoleStaff
	}

	s.state.Users = append(s.state.Users, u)
	s.persist()
	return u
}

// UpdateUser applies a partial patch. Unknown id is a no-op returning nil.
func (s *Store) UpdateUser(userID string, patch model.UserPatch) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Users {
		u := &s.state.Users[i]
		if u.ID != userID {
			continue
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if patch.Avatar != nil {
			u.Avatar = *patch.Avatar
		}
		u.UpdatedAt = s.now()
		s.persist()
		out := *u
		return &out
	}
	return nil
}

func (s *Store) AssignRole(userID string, role model.Role) *model.User {
	return s.UpdateUser(userID, model.UserPatch{Role: &role})
}

// DeleteUser removes the member. Tasks assigned to them and project team
// lists keep the dangling id; references are weak.
func (s *Store) DeleteUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.state.Users[:0]
	for _, u := range s.state.Users {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	s.state.Users = users
	s.persist()
}

func (s *Store) GetUserByID(userID string) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.state.Users {
		if s.state.Users[i].ID == userID {
			out := s.state.Users[i]
			return &out
		}
	}
	return nil
}

func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, len(s.state.Users))
	copy(out, s.state.Users)
	return out
}

func (s *Store) ListUsersByRole(role model.Role) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.User{}
	for _, u := range s.state.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}
