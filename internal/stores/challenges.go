package stores

import (
	"context"

	"github.com/authgate/backend/internal/domain"
)

// ChallengeStore owns pending second-factor challenges, keyed by account.
// At most one challenge is pending per account at any time.
type ChallengeStore interface {
	// Put records a pending challenge, unconditionally replacing any prior
	// one for the same account. A superseded challenge is permanently
	// unusable even if it was never delivered.
	Put(ctx context.Context, email domain.Email, id domain.ChallengeID, code domain.OneTimeCode) error

	// Get returns the pending challenge for email or
	// domain.ErrChallengeNotFound.
	Get(ctx context.Context, email domain.Email) (domain.ChallengeID, domain.OneTimeCode, error)

	// Remove deletes the pending challenge, enforcing single use. It fails
	// with domain.ErrChallengeNotFound when nothing is pending.
	Remove(ctx context.Context, email domain.Email) error
}
