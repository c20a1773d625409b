package identity

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrEmailEmpty is returned when attempting to sign up with an empty email.
	ErrEmailEmpty = errors.New("email cannot be empty")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned when email or password do not match.
	// Deliberately the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrGracePeriodExpired is returned when a soft-deleted account tries to
	// authenticate after the reactivation window has passed.
	ErrGracePeriodExpired = errors.New("account deleted and grace period expired")
)
