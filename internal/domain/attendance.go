package domain

import (
	"context"
	"time"
)

// Attendance is the association fact that a user checked in to an activity.
// At most one exists per (activity, user) pair.
// swagger:model Attendance
type Attendance struct {
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAttendance creates an Attendance fact.
func NewAttendance(activityID, userID string, createdAt time.Time) *Attendance {
	return &Attendance{ActivityID: activityID, UserID: userID, CreatedAt: createdAt}
}

// AttendanceRepository defines storage for the attendance ledger.
// Create returns ErrDuplicateCheckIn when the pair exists.
type AttendanceRepository interface {
	Create(ctx context.Context, att *Attendance) error
	Get(ctx context.Context, activityID, userID string) (*Attendance, error)
	ListByActivityID(ctx context.Context, activityID string) ([]*Attendance, error)
	ListByUserID(ctx context.Context, userID string) ([]*Attendance, error)
}

// CheckInService defines the organizer check-in toggle and the participant
// code submission protocol.
type CheckInService interface {
	// OpenCheckIn generates a fresh 6-digit code for the activity, unique
	// among currently-open activities, and opens check-in.
	OpenCheckIn(ctx context.Context, actorID, activityID string) (*Activity, error)
	// CloseCheckIn clears the code and closes check-in, invalidating any
	// previously issued code immediately.
	CloseCheckIn(ctx context.Context, actorID, activityID string) (*Activity, error)
	// SubmitCode records attendance for the open activity matching the code.
	SubmitCode(ctx context.Context, actorID, code string) (*Attendance, error)
}
