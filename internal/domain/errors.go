package domain

import "errors"

// Sentinel errors shared across services. Controllers translate these to
// HTTP statuses; repositories translate driver errors into them.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the access policy denies the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrWindowClosed is returned when an operation is attempted outside its
	// configured time window.
	ErrWindowClosed = errors.New("window closed")

	// ErrAlreadyRegistered is returned when the (user, event) registration
	// pair already exists.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrNotRegistered is returned when an operation requires a registration
	// that does not exist.
	ErrNotRegistered = errors.New("not registered")

	// ErrDuplicateCheckIn is returned when the (user, activity) attendance
	// pair already exists.
	ErrDuplicateCheckIn = errors.New("already checked in")

	// ErrInvalidCode is returned when a check-in code does not resolve to
	// exactly one open activity.
	ErrInvalidCode = errors.New("invalid or expired check-in code")

	// ErrInvalidTransition is returned when a submission status change is not
	// in the allowed edge set.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateEmail is returned when an account with the email exists.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidInput is returned when the request is structurally invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
