package store

import (
	"time"

	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// RecordCheckIn opens an attendance record. The store does not prevent a
// user from holding more than one open record; callers that care should
// check out first.
func (s *Store) RecordCheckIn(userID, projectID string, ts time.Time) model.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := model.Attendance{
		ID:        s.newID(),
		UserID:    userID,
		ProjectID: projectID,
		CheckIn:   ts,
		CheckOut:  nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.state.Attendance = append(s.state.Attendance, a)
	s.persist()
	return a
}

// RecordCheckOut closes every open attendance record for the user and
// returns the records it closed.
func (s *Store) RecordCheckOut(userID string, ts time.Time) []model.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()

	closed := []model.Attendance{}
	for i := range s.state.Attendance {
		a := &s.state.Attendance[i]
		if a.UserID != userID || a.CheckOut != nil {
			continue
		}
		out := ts
		a.CheckOut = &out
		a.UpdatedAt = s.now()
		closed = append(closed, *a)
	}
	if len(closed) > 0 {
		s.persist()
	}
	return closed
}

// GetAttendanceByDate returns the user's records whose check-in falls on
// the given calendar day.
func (s *Store) GetAttendanceByDate(userID string, date time.Time) []model.Attendance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	out := []model.Attendance{}
	for _, a := range s.state.Attendance {
		if a.UserID == userID && !a.CheckIn.Before(dayStart) && a.CheckIn.Before(dayEnd) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) ListAttendanceForUser(userID string) []model.Attendance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Attendance{}
	for _, a := range s.state.Attendance {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) ListAttendanceForProject(projectID string) []model.Attendance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Attendance{}
	for _, a := range s.state.Attendance {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out
}

// hoursBetween is the closed attendance duration in hours; open records
// contribute nothing.
func hoursBetween(a model.Attendance) float64 {
	if a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(a.CheckIn).Hours()
}
