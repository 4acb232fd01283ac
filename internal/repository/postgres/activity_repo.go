package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventum/internal/domain"
)

const activityColumns = `id, event_id, title, description, starts_at, ends_at, location,
		check_in_code, check_in_open, created_at, updated_at`

type activityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{
		DB: db,
	}
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	query := `
		INSERT INTO activities (event_id, title, description, starts_at, ends_at, location, check_in_open, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		a.EventID, a.Title, a.Description, a.StartsAt, a.EndsAt, a.Location, a.CheckInOpen, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	return scanActivity(r.DB.QueryRowContext(ctx, query, id))
}

func (r *activityRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE event_id = $1 ORDER BY starts_at ASC`
	return r.list(ctx, query, eventID)
}

func (r *activityRepository) Update(ctx context.Context, id string, upd domain.ActivityUpdate) (*domain.Activity, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.StartsAt != nil {
		add("starts_at", *upd.StartsAt)
	}
	if upd.EndsAt != nil {
		add("ends_at", *upd.EndsAt)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE activities SET %s
		WHERE id = $%d
		RETURNING `+activityColumns+`
	`, strings.Join(setClauses, ", "), n)
	return scanActivity(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM activities WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *activityRepository) SetCheckIn(ctx context.Context, id string, code *string, open bool) error {
	query := `UPDATE activities SET check_in_code = $1, check_in_open = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.DB.ExecContext(ctx, query, code, open, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *activityRepository) ListOpenByCode(ctx context.Context, code string) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE check_in_open = TRUE AND check_in_code = $1`
	return r.list(ctx, query, code)
}

func (r *activityRepository) OpenCodeInUse(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM activities WHERE check_in_open = TRUE AND check_in_code = $1)`
	var inUse bool
	if err := r.DB.QueryRowContext(ctx, query, code).Scan(&inUse); err != nil {
		return false, err
	}
	return inUse, nil
}

func (r *activityRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Activity, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	a := &domain.Activity{}
	var codeNull sql.NullString
	err := row.Scan(
		&a.ID, &a.EventID, &a.Title, &a.Description, &a.StartsAt, &a.EndsAt, &a.Location,
		&codeNull, &a.CheckInOpen, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if codeNull.Valid {
		a.CheckInCode = &codeNull.String
	}
	return a, nil
}
