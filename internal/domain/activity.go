package domain

import (
	"context"
	"time"
)

// Activity is a scheduled item inside an event. Its time span must be a
// subinterval of the event span. CheckInCode is set only while check-in is
// open.
// swagger:model Activity
type Activity struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location"`
	CheckInCode *string   `json:"check_in_code,omitempty"`
	CheckInOpen bool      `json:"check_in_open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityUpdate carries the mutable activity fields for a partial update.
type ActivityUpdate struct {
	Title       *string
	Description *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Location    *string
}

// ActivityRepository defines the interface for activity storage.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Activity, error)
	Update(ctx context.Context, id string, upd ActivityUpdate) (*Activity, error)
	Delete(ctx context.Context, id string) error
	// SetCheckIn stores the check-in code and open flag. A nil code clears it.
	SetCheckIn(ctx context.Context, id string, code *string, open bool) error
	// ListOpenByCode returns all activities whose check-in is open with the
	// given code. Callers decide how to treat zero or multiple matches.
	ListOpenByCode(ctx context.Context, code string) ([]*Activity, error)
	// OpenCodeInUse reports whether any currently-open activity uses the code.
	OpenCodeInUse(ctx context.Context, code string) (bool, error)
}
