package domain

import (
	"context"
	"fmt"
	"time"
)

// Role is the closed set of application roles. Illegal roles are rejected at
// the boundary by ParseRole.
type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleSpeaker     Role = "speaker"
	RoleParticipant Role = "participant"
	RoleProfessor   Role = "professor"
)

// ParseRole validates a role string coming from a request or storage row.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOrganizer, RoleSpeaker, RoleParticipant, RoleProfessor:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// User represents a registered account.
// swagger:model User
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               Role      `json:"role"`
	AllowPublicProfile bool      `json:"allow_public_profile"`
	GroupID            *string   `json:"group_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewUser returns a new User. ID is set by the repository on create.
func NewUser(name, email, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// PasswordHasher handles hashing and verification of account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the acting user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for account storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateSettings(ctx context.Context, id string, name, email *string, allowPublicProfile *bool) (*User, error)
	SetGroup(ctx context.Context, id string, groupID *string) error
}

// UserService defines account and identity operations.
type UserService interface {
	SignUp(ctx context.Context, name, email, password string, role Role, groupID *string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateSettings(ctx context.Context, actorID string, name, email *string, allowPublicProfile *bool) (*User, error)
	AssignGroup(ctx context.Context, actorID, userID, groupID string) error
	RemoveFromGroup(ctx context.Context, actorID, userID string) error
}
