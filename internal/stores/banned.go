package stores

import "context"

// BannedTokenStore owns the revocation set for session tokens. Once banned,
// a token stays banned; there is no un-ban operation.
type BannedTokenStore interface {
	// Ban adds a raw token to the revocation set. Banning an already-banned
	// token is not an error.
	Ban(ctx context.Context, token string) error

	// IsBanned reports whether the raw token has been revoked.
	IsBanned(ctx context.Context, token string) (bool, error)
}
