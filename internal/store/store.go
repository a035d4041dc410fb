// Package store is the single source of truth for all domain entities.
//
// CRUD operations are deliberately permissive: foreign keys and business
// uniqueness are not validated, and operations on missing ids are tolerant
// no-ops. Derived queries and report generation are the strict surface and
// fail with errs.ErrNotFound when a parent entity does not exist.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/storage"
)

type Store struct {
	mu     sync.RWMutex
	state  model.AppState
	codec  *storage.Codec
	logger zerolog.Logger

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id generation, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New hydrates the store from the codec's last snapshot, falling back to
// the demo seed dataset when no usable snapshot exists. A nil codec gives
// a purely in-memory store.
func New(codec *storage.Codec, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		codec:  codec,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if codec != nil {
		if state, ok := codec.Load(); ok {
			s.state = *state
			return s
		}
	}
	s.state = seedState()
	return s
}

// ResetDemoData discards the current state and persists a fresh copy of
// the demo seed dataset.
func (s *Store) ResetDemoData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = seedState()
	s.persist()
}

// persist snapshots the full state after a mutation. Write failures are
// logged and observable but never fail the mutation itself; the in-memory
// state already reflects the change.
func (s *Store) persist() {
	if s.codec == nil {
		return
	}
	snapshot := s.state
	if err := s.codec.Save(&snapshot); err != nil {
		s.logger.Error().Err(err).Msg("snapshot write failed, change not persisted")
	}
}

// State returns a copy of the current snapshot. The collections are
// copied so later mutations, which compact the live arrays in place,
// cannot reach into a snapshot a caller is still holding.
func (s *Store) State() model.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.AppState{
		Projects:         append([]model.Project(nil), s.state.Projects...),
		Tasks:            append([]model.Task(nil), s.state.Tasks...),
		Users:            append([]model.User(nil), s.state.Users...),
		Comments:         append([]model.Comment(nil), s.state.Comments...),
		Attendance:       append([]model.Attendance(nil), s.state.Attendance...),
		Reports:          append([]model.Report(nil), s.state.Reports...),
		Notifications:    append([]model.Notification(nil), s.state.Notifications...),
		CustomStatuses:   append([]model.CustomStatus(nil), s.state.CustomStatuses...),
		CustomLabels:     append([]model.CustomLabel(nil), s.state.CustomLabels...),
		ReportCategories: append([]model.ReportCategory(nil), s.state.ReportCategories...),
	}
}

func (s *Store) requireProject(projectID string) (*model.Project, error) {
	for i := range s.state.Projects {
		if s.state.Projects[i].ID == projectID {
			return &s.state.Projects[i], nil
		}
	}
	return nil, errs.Wrapf(errs.ErrNotFound, "project %s", projectID)
}

func (s *Store) requireUser(userID string) (*model.User, error) {
	for i := range s.state.Users {
		if s.state.Users[i].ID == userID {
			return &s.state.Users[i], nil
		}
	}
	return nil, errs.Wrapf(errs.ErrNotFound, "user %s", userID)
}

// seedState is the demo dataset used when no snapshot exists. Safe to
// replace wholesale; it only exists so a fresh install is not empty.
func seedState() model.AppState {
	t := func(v string) time.Time {
		parsed, _ := time.Parse(time.RFC3339, v)
		return parsed
	}

	return model.AppState{
		Projects: []model.Project{
			{
				ID:             "1",
				Name:           "Website Redesign",
				Description:    "Complete overhaul of company website with modern design",
				Status:         model.ProjectActive,
				StartDate:      t("2024-01-01T00:00:00Z"),
				EndDate:        t("2024-03-31T00:00:00Z"),
				TeamIDs:        []string{"user-1", "user-2"},
				CustomStatuses: []model.CustomStatus{},
				CreatedAt:      t("2024-01-01T00:00:00Z"),
				UpdatedAt:      t("2024-01-01T00:00:00Z"),
			},
			{
				ID:             "2",
				Name:           "Mobile App Development",
				Description:    "Native mobile app for iOS and Android platforms",
				Status:         model.ProjectPlanning,
				StartDate:      t("2024-02-01T00:00:00Z"),
				EndDate:        t("2024-06-30T00:00:00Z"),
				TeamIDs:        []string{"user-2", "user-3"},
				CustomStatuses: []model.CustomStatus{},
				CreatedAt:      t("2024-02-01T00:00:00Z"),
				UpdatedAt:      t("2024-02-01T00:00:00Z"),
			},
		},
		Tasks: []model.Task{
			{
				ID:          "task-1",
				Title:       "Design Homepage Layout",
				Description: "Create wireframes and mockups for the new homepage design",
				Status:      model.StatusInProgress,
				Priority:    model.PriorityHigh,
				AssigneeID:  "user-1",
				ProjectID:   "1",
				Labels:      []string{"design", "frontend"},
				DueDate:     t("2024-01-15T00:00:00Z"),
				Files:       []model.TaskFile{},
				CreatedAt:   t("2024-01-01T00:00:00Z"),
				UpdatedAt:   t("2024-01-01T00:00:00Z"),
			},
			{
				ID:          "task-2",
				Title:       "Set up Development Environment",
				Description: "Configure development tools and dependencies",
				Status:      model.StatusDone,
				Priority:    model.PriorityMedium,
				AssigneeID:  "user-2",
				ProjectID:   "1",
				Labels:      []string{"setup", "development"},
				DueDate:     t("2024-01-10T00:00:00Z"),
				Files:       []model.TaskFile{},
				CreatedAt:   t("2024-01-01T00:00:00Z"),
				UpdatedAt:   t("2024-01-01T00:00:00Z"),
			},
			{
				ID:          "task-3",
				Title:       "Research Mobile Frameworks",
				Description: "Evaluate React Native vs Flutter for mobile development",
				Status:      model.StatusToDo,
				Priority:    model.PriorityMedium,
				AssigneeID:  "user-3",
				ProjectID:   "2",
				Labels:      []string{"research", "mobile"},
				DueDate:     t("2024-02-15T00:00:00Z"),
				Files:       []model.TaskFile{},
				CreatedAt:   t("2024-02-01T00:00:00Z"),
				UpdatedAt:   t("2024-02-01T00:00:00Z"),
			},
		},
		Users: []model.User{
			{
				ID:        "user-1",
				Name:      "Sarah Chen",
				Email:     "sarah.chen@example.com",
				Role:      model.RoleManager,
				Avatar:    "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg",
				CreatedAt: t("2024-01-01T00:00:00Z"),
				UpdatedAt: t("2024-01-01T00:00:00Z"),
			},
			{
				ID:        "user-2",
				Name:      "Mike Johnson",
				Email:     "mike.johnson@example.com",
				Role:      model.RoleStaff,
				Avatar:    "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg",
				CreatedAt: t("2024-01-01T00:00:00Z"),
				UpdatedAt: t("2024-01-01T00:00:00Z"),
			},
			{
				ID:        "user-3",
				Name:      "Alex Kim",
				Email:     "alex.kim@example.com",
				Role:      model.RoleStaff,
				Avatar:    "https://images.pexels.com/photos/1516680/pexels-photo-1516680.jpeg",
				CreatedAt: t("2024-01-01T00:00:00Z"),
				UpdatedAt: t("2024-01-01T00:00:00Z"),
			},
		},
		Comments:         []model.Comment{},
		Attendance:       []model.Attendance{},
		Reports:          []model.Report{},
		Notifications:    []model.Notification{},
		CustomStatuses:   []model.CustomStatus{},
		CustomLabels:     []model.CustomLabel{},
		ReportCategories: []model.ReportCategory{},
	}
}
