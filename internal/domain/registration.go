package domain

import (
	"context"
	"time"
)

// Registration is the association fact that a user is registered to an
// event. At most one exists per (event, user) pair; the composite primary
// key in storage makes concurrent duplicate inserts fail deterministically.
// swagger:model Registration
type Registration struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRegistration creates a Registration fact.
func NewRegistration(eventID, userID string, createdAt time.Time) *Registration {
	return &Registration{EventID: eventID, UserID: userID, CreatedAt: createdAt}
}

// RegistrationWithEvent bundles a registration with its event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// Participant is the public projection of a registered user.
type Participant struct {
	UserID             string `json:"user_id"`
	Name               string `json:"name"`
	Email              string `json:"email,omitempty"`
	AllowPublicProfile bool   `json:"allow_public_profile"`
}

// RegistrationRepository defines storage for the registration ledger.
// Create returns ErrAlreadyRegistered when the pair exists; Delete returns
// ErrNotRegistered when it does not.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	Get(ctx context.Context, eventID, userID string) (*Registration, error)
	Delete(ctx context.Context, eventID, userID string) error
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	ListParticipants(ctx context.Context, eventID string) ([]*Participant, error)
}

// RegistrationService defines the registration ledger operations.
type RegistrationService interface {
	// Register registers the actor for the event. The event must be published
	// and its registration window open.
	Register(ctx context.Context, actorID, eventID string) (*Registration, error)
	// Cancel removes the actor's registration. No window gate applies.
	Cancel(ctx context.Context, actorID, eventID string) error
	ListMyRegistrations(ctx context.Context, actorID string) ([]*RegistrationWithEvent, error)
	// ListParticipants lists an event's participants. Non-owners only see
	// users who opted into a public profile, without email addresses.
	ListParticipants(ctx context.Context, actorID, eventID string) ([]*Participant, error)
}
