package domain

import "context"

// StudyGroup is the academic group (class) a user or event can reference.
// Only the name and foreign keys needed to route the credit-hours
// notification are modeled here; the academic hierarchy itself is external.
// swagger:model StudyGroup
type StudyGroup struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CourseID string `json:"course_id"`
}

// GroupRepository defines read access to study groups.
type GroupRepository interface {
	GetByID(ctx context.Context, id string) (*StudyGroup, error)
}
