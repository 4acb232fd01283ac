package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventum/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{
		DB: db,
	}
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.StudyGroup, error) {
	query := `
		SELECT id, name, course_id
		FROM study_groups
		WHERE id = $1
	`
	g := &domain.StudyGroup{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}
