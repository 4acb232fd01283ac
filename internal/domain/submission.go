package domain

import (
	"context"
	"time"
)

// SubmissionStatus tracks a submitted work through review. Approved and
// Rejected are terminal. The allowed decision edge set is
// {Submitted, UnderReview} -> {Approved, Rejected}: passage through
// UnderReview is possible but not required.
type SubmissionStatus string

const (
	SubmissionSubmitted   SubmissionStatus = "submitted"
	SubmissionUnderReview SubmissionStatus = "under_review"
	SubmissionApproved    SubmissionStatus = "approved"
	SubmissionRejected    SubmissionStatus = "rejected"
)

// Terminal reports whether no further transition is permitted.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

// CanDecideTo reports whether a decision moving the submission from s to
// target is in the allowed edge set.
func (s SubmissionStatus) CanDecideTo(target SubmissionStatus) bool {
	if s.Terminal() {
		return false
	}
	return target == SubmissionApproved || target == SubmissionRejected
}

// Submission is a work submitted to an event for review. FileRef is an
// opaque reference into the external upload store.
// swagger:model Submission
type Submission struct {
	ID        string           `json:"id"`
	EventID   string           `json:"event_id"`
	AuthorID  string           `json:"author_id"`
	Title     string           `json:"title"`
	FileRef   string           `json:"file_ref"`
	Status    SubmissionStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SubmissionRepository defines storage for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	ListByAuthorID(ctx context.Context, authorID string) ([]*Submission, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Submission, error)
	// DecideStatus sets the status only while the current status is still
	// undecided. It returns false when the row was already terminal, making
	// the decision a compare-and-set under concurrent reviewers.
	DecideStatus(ctx context.Context, id string, status SubmissionStatus) (bool, error)
}

// SubmissionService defines the review state machine operations.
type SubmissionService interface {
	// Create inserts a submission with status Submitted. The actor must hold
	// the Speaker role and the event's submission window must be open.
	Create(ctx context.Context, actorID, eventID, title, fileRef string) (*Submission, error)
	// Decide moves the submission to Approved or Rejected. Only the target
	// event's organizer may decide; terminal states reject further decisions.
	Decide(ctx context.Context, actorID, submissionID string, newStatus SubmissionStatus) (*Submission, error)
	ListMySubmissions(ctx context.Context, actorID string) ([]*Submission, error)
	ListEventSubmissions(ctx context.Context, actorID, eventID string) ([]*Submission, error)
}
