package services

import (
	"context"
	"fmt"
	"time"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/stores"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload: the subject email plus the standard
// time bounds.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues, validates, and revokes signed session tokens. The
// signing secret and lifetime are fixed at construction for the process
// lifetime; revocation state lives in the banned-token store.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	banned stores.BannedTokenStore
}

func NewTokenService(secret string, ttl time.Duration, banned stores.BannedTokenStore) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		banned: banned,
	}
}

func (s *TokenService) Issue(email domain.Email) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   email.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature and expiry first, then the revocation set, so
// the error for a malformed or expired token never depends on whether it
// was also banned.
func (s *TokenService) Validate(ctx context.Context, raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	banned, err := s.banned.IsBanned(ctx, raw)
	if err != nil {
		return nil, domain.ErrUnexpected
	}
	if banned {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrInvalidToken)
	}

	return claims, nil
}

// Revoke adds the raw token to the revocation set. Called once per logout.
func (s *TokenService) Revoke(ctx context.Context, raw string) error {
	if err := s.banned.Ban(ctx, raw); err != nil {
		return domain.ErrUnexpected
	}
	return nil
}
