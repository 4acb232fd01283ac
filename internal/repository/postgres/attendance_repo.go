package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventum/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{
		DB: db,
	}
}

// Create inserts the attendance fact. The (activity_id, user_id) primary key
// makes a repeated check-in fail deterministically.
func (r *attendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	query := `
		INSERT INTO attendances (activity_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, att.ActivityID, att.UserID, att.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCheckIn
		}
		return err
	}
	return nil
}

func (r *attendanceRepository) Get(ctx context.Context, activityID, userID string) (*domain.Attendance, error) {
	query := `
		SELECT activity_id, user_id, created_at
		FROM attendances
		WHERE activity_id = $1 AND user_id = $2
	`
	att := &domain.Attendance{}
	err := r.DB.QueryRowContext(ctx, query, activityID, userID).
		Scan(&att.ActivityID, &att.UserID, &att.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return att, nil
}

func (r *attendanceRepository) ListByActivityID(ctx context.Context, activityID string) ([]*domain.Attendance, error) {
	query := `
		SELECT activity_id, user_id, created_at
		FROM attendances
		WHERE activity_id = $1
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, activityID)
}

func (r *attendanceRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Attendance, error) {
	query := `
		SELECT activity_id, user_id, created_at
		FROM attendances
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Attendance, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	atts := make([]*domain.Attendance, 0)
	for rows.Next() {
		att := &domain.Attendance{}
		if err := rows.Scan(&att.ActivityID, &att.UserID, &att.CreatedAt); err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}
	return atts, rows.Err()
}
