package domain

import "errors"

var (
	// ErrInvalidCredentials covers a missing or wrong email/password pair.
	// The message is deliberately identical for both cases.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// expired, or carries a bad signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when an authenticated identity does not own
	// the resource it is trying to act on.
	ErrForbidden = errors.New("access forbidden")

	// ErrUserNotFound is returned when a referenced user id does not resolve,
	// or a relationship mutation names no target at all.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfRelation is returned when a user tries to befriend or antagonise
	// itself. A user never appears in its own friends or enemies set.
	ErrSelfRelation = errors.New("cannot create a relationship with yourself")

	// ErrEmailTaken is returned when registration collides with the unique
	// email index.
	ErrEmailTaken = errors.New("email already registered")

	// ErrMissingSecret is returned when the token signing secret is absent
	// from the configuration.
	ErrMissingSecret = errors.New("token signing secret is not configured")
)
