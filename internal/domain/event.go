package domain

import (
	"context"
	"time"
)

// EventStatus is the publication state of an event. Only published events
// accept registrations and submissions.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
)

// ParseEventStatus validates a status string from a request or storage row.
func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(s) {
	case EventDraft, EventPublished:
		return EventStatus(s), nil
	}
	return "", ErrInvalidInput
}

// Event represents an event with its registration and optional submission
// windows. All timestamps are stored in UTC; windows are half-open.
// swagger:model Event
type Event struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	StartsAt             time.Time   `json:"starts_at"`
	EndsAt               time.Time   `json:"ends_at"`
	RegistrationOpensAt  time.Time   `json:"registration_opens_at"`
	RegistrationClosesAt time.Time   `json:"registration_closes_at"`
	SubmissionOpensAt    *time.Time  `json:"submission_opens_at,omitempty"`
	SubmissionClosesAt   *time.Time  `json:"submission_closes_at,omitempty"`
	Status               EventStatus `json:"status"`
	OrganizerID          string      `json:"organizer_id"`
	Workload             int         `json:"workload"`
	GroupID              *string     `json:"group_id,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// HasSubmissionWindow reports whether the event accepts submissions at all.
func (e *Event) HasSubmissionWindow() bool {
	return e.SubmissionOpensAt != nil && e.SubmissionClosesAt != nil
}

// EventUpdate carries the mutable event fields for a partial update.
// Nil pointers leave the stored value unchanged.
type EventUpdate struct {
	Title                *string
	Description          *string
	StartsAt             *time.Time
	EndsAt               *time.Time
	RegistrationOpensAt  *time.Time
	RegistrationClosesAt *time.Time
	SubmissionOpensAt    *time.Time
	SubmissionClosesAt   *time.Time
	ClearSubmission      bool
	Status               *EventStatus
	Workload             *int
}

// EventRepository defines the interface for event storage. Delete cascades to
// activities, registrations, attendances, and submissions.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListPublished(ctx context.Context) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer-facing event and schedule management.
type EventService interface {
	CreateEvent(ctx context.Context, actorID string, event *Event) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, []*Activity, error)
	ListPublishedEvents(ctx context.Context) ([]*Event, error)
	ListMyEvents(ctx context.Context, actorID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, actorID, eventID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, actorID, eventID string) error
	CreateActivity(ctx context.Context, actorID string, activity *Activity) (*Activity, error)
	UpdateActivity(ctx context.Context, actorID, activityID string, upd ActivityUpdate) (*Activity, error)
	DeleteActivity(ctx context.Context, actorID, activityID string) error
}
