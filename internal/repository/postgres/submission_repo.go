package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventum/internal/domain"
)

const submissionColumns = `id, event_id, author_id, title, file_ref, status, created_at, updated_at`

type submissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) domain.SubmissionRepository {
	return &submissionRepository{
		DB: db,
	}
}

func (r *submissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	query := `
		INSERT INTO submissions (event_id, author_id, title, file_ref, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.EventID, s.AuthorID, s.Title, s.FileRef, string(s.Status), s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return scanSubmission(r.DB.QueryRowContext(ctx, query, id))
}

func (r *submissionRepository) ListByAuthorID(ctx context.Context, authorID string) ([]*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE author_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, authorID)
}

func (r *submissionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE event_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, eventID)
}

// DecideStatus updates the status only while the row is still undecided, so
// concurrent reviewers cannot overwrite a terminal decision. The returned
// bool reports whether this call won.
func (r *submissionRepository) DecideStatus(ctx context.Context, id string, status domain.SubmissionStatus) (bool, error) {
	query := `
		UPDATE submissions SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status IN ('submitted', 'under_review')
	`
	result, err := r.DB.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *submissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Submission, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subs := make([]*domain.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	s := &domain.Submission{}
	var status string
	err := row.Scan(&s.ID, &s.EventID, &s.AuthorID, &s.Title, &s.FileRef, &status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.Status = domain.SubmissionStatus(status)
	return s, nil
}
