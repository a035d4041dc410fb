package store

import (
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// CreateCustomStatus adds a project-scoped status definition. Order is the
// append position.
func (s *Store) CreateCustomStatus(projectID, name, color string) model.CustomStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := model.CustomStatus{
		ID:        s.newID(),
		Name:      name,
		Color:     color,
		ProjectID: projectID,
		Order:     len(s.state.CustomStatuses),
		CreatedAt: s.now(),
	}
	s.state.CustomStatuses = append(s.state.CustomStatuses, status)
	s.persist()
	return status
}

// AddTaskLabel adds a global label definition.
func (s *Store) AddTaskLabel(name, color string) model.CustomLabel {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := model.CustomLabel{
		ID:        s.newID(),
		Name:      name,
		Color:     color,
		CreatedAt: s.now(),
	}
	s.state.CustomLabels = append(s.state.CustomLabels, label)
	s.persist()
	return label
}

func (s *Store) CreateReportCategory(name, description string, metrics []string) model.ReportCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	if metrics == nil {
		metrics = []string{}
	}
	category := model.ReportCategory{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Metrics:     metrics,
		CreatedAt:   s.now(),
	}
	s.state.ReportCategories = append(s.state.ReportCategories, category)
	s.persist()
	return category
}

// ListCustomOptions returns the taxonomy collection for the given kind, or
// an empty slice for an unknown kind.
func (s *Store) ListCustomOptions(kind model.CustomOptionKind) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case model.OptionStatus:
		out := make([]model.CustomStatus, len(s.state.CustomStatuses))
		copy(out, s.state.CustomStatuses)
		return out
	case model.OptionLabel:
		out := make([]model.CustomLabel, len(s.state.CustomLabels))
		copy(out, s.state.CustomLabels)
		return out
	case model.OptionReport:
		out := make([]model.ReportCategory, len(s.state.ReportCategories))
		copy(out, s.state.ReportCategories)
		return out
	default:
		return []any{}
	}
}
