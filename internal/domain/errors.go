// Package domain holds the validated credential types and the error
// taxonomy shared by the stores, the auth service, and the HTTP layer.
package domain

import "errors"

var (
	// ErrInvalidCredentials covers malformed input and unknown accounts.
	// The two are deliberately indistinguishable so a caller cannot probe
	// which field was wrong or whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIncorrectCredentials is a failed password or second-factor check
	// against an account that does exist.
	ErrIncorrectCredentials = errors.New("incorrect credentials")

	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrChallengeNotFound = errors.New("challenge not found")

	ErrMissingToken = errors.New("missing auth token")
	ErrInvalidToken = errors.New("invalid auth token")

	// ErrUnexpected is the single kind all backend/infrastructure failures
	// collapse into. No further detail is leaked to callers.
	ErrUnexpected = errors.New("unexpected error")
)
