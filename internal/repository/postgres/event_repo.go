package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventum/internal/domain"
)

const eventColumns = `id, title, description, starts_at, ends_at,
		registration_opens_at, registration_closes_at, submission_opens_at, submission_closes_at,
		status, organizer_id, workload, group_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, starts_at, ends_at,
			registration_opens_at, registration_closes_at, submission_opens_at, submission_closes_at,
			status, organizer_id, workload, group_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.StartsAt, e.EndsAt,
		e.RegistrationOpensAt, e.RegistrationClosesAt, e.SubmissionOpensAt, e.SubmissionClosesAt,
		string(e.Status), e.OrganizerID, e.Workload, e.GroupID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) ListPublished(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE status = 'published' ORDER BY starts_at ASC`
	return r.list(ctx, query)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, organizerID)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
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
	if upd.RegistrationOpensAt != nil {
		add("registration_opens_at", *upd.RegistrationOpensAt)
	}
	if upd.RegistrationClosesAt != nil {
		add("registration_closes_at", *upd.RegistrationClosesAt)
	}
	if upd.ClearSubmission {
		setClauses = append(setClauses, "submission_opens_at = NULL", "submission_closes_at = NULL")
	} else {
		if upd.SubmissionOpensAt != nil {
			add("submission_opens_at", *upd.SubmissionOpensAt)
		}
		if upd.SubmissionClosesAt != nil {
			add("submission_closes_at", *upd.SubmissionClosesAt)
		}
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.Workload != nil {
		add("workload", *upd.Workload)
	}
	if n == 1 && !upd.ClearSubmission {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	return scanEvent(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	var subOpens, subCloses sql.NullTime
	var groupNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt,
		&e.RegistrationOpensAt, &e.RegistrationClosesAt, &subOpens, &subCloses,
		&status, &e.OrganizerID, &e.Workload, &groupNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	if subOpens.Valid {
		e.SubmissionOpensAt = &subOpens.Time
	}
	if subCloses.Valid {
		e.SubmissionClosesAt = &subCloses.Time
	}
	if groupNull.Valid {
		e.GroupID = &groupNull.String
	}
	return e, nil
}
