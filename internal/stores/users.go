// Package stores defines the narrow persistence capabilities the auth
// service composes, plus reference in-memory implementations and
// GORM-backed durable ones. Implementations own their records outright;
// callers only reach state through these interfaces.
package stores

import (
	"context"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/models"
)

// UserStore owns account records and credential checks.
type UserStore interface {
	// Add inserts a new account. It fails with domain.ErrUserExists if the
	// email already has a record; the check-then-insert is atomic, so two
	// concurrent signups for one email yield exactly one success.
	Add(ctx context.Context, user *models.User) error

	// Get returns the account for email or domain.ErrUserNotFound.
	Get(ctx context.Context, email domain.Email) (*models.User, error)

	// ValidateCredentials fails with domain.ErrUserNotFound for unknown
	// accounts and domain.ErrIncorrectCredentials on a password mismatch.
	ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error
}
