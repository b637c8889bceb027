// Package services contains the authentication business logic: the
// orchestrator driving the credential/session state machine, the session
// token service, and the outbound email client.
package services

import (
	"context"
	"errors"
	"io"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/models"
	"github.com/authgate/backend/internal/stores"
	"github.com/authgate/backend/pkg/utils"
)

const challengeEmailSubject = "Your verification code"

// AuthService drives a login attempt to either an authenticated session or
// a pending second-factor challenge, resolves challenges, and revokes
// sessions. It owns no long-lived state itself; everything mutable lives in
// the stores it composes.
type AuthService struct {
	users      stores.UserStore
	challenges stores.ChallengeStore
	tokens     *TokenService
	email      EmailClient

	// rand seeds challenge ids and one-time codes; nil means crypto/rand.
	// Tests inject a deterministic reader here.
	rand io.Reader
}

func NewAuthService(users stores.UserStore, challenges stores.ChallengeStore, tokens *TokenService, email EmailClient) *AuthService {
	return &AuthService{
		users:      users,
		challenges: challenges,
		tokens:     tokens,
		email:      email,
	}
}

// LoginResult is either an authenticated session or a pending challenge,
// never both.
type LoginResult struct {
	Token             string
	ChallengeID       string
	TwoFactorRequired bool
}

// Signup registers a new account. Malformed input maps to
// ErrInvalidCredentials; a taken email maps to ErrUserExists.
func (s *AuthService) Signup(ctx context.Context, rawEmail, rawPassword string, requires2FA bool) error {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return domain.ErrInvalidCredentials
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(password.Reveal())
	if err != nil {
		return domain.ErrUnexpected
	}

	user := &models.User{
		Email:        email.String(),
		PasswordHash: hash,
		Requires2FA:  requires2FA,
	}
	if err := s.users.Add(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return domain.ErrUserExists
		}
		return domain.ErrUnexpected
	}
	return nil
}

// Login authenticates a credential pair. Malformed input and unknown
// accounts both map to ErrInvalidCredentials so a caller cannot learn which
// field was wrong or whether the account exists; a wrong password against a
// real account maps to ErrIncorrectCredentials. Accounts with a second
// factor get a fresh challenge instead of a token; issuing it supersedes
// any challenge already pending for the account.
func (s *AuthService) Login(ctx context.Context, rawEmail, rawPassword string) (*LoginResult, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.ErrUnexpected
	}

	if !utils.CheckPassword(password.Reveal(), user.PasswordHash) {
		return nil, domain.ErrIncorrectCredentials
	}

	if user.Requires2FA {
		return s.issueChallenge(ctx, email)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, domain.ErrUnexpected
	}
	return &LoginResult{Token: token}, nil
}

func (s *AuthService) issueChallenge(ctx context.Context, email domain.Email) (*LoginResult, error) {
	id, err := domain.NewChallengeID(s.rand)
	if err != nil {
		return nil, domain.ErrUnexpected
	}
	code, err := domain.NewOneTimeCode(s.rand)
	if err != nil {
		return nil, domain.ErrUnexpected
	}

	if err := s.challenges.Put(ctx, email, id, code); err != nil {
		return nil, domain.ErrUnexpected
	}

	// The challenge is durable before delivery is attempted. A delivery
	// failure leaves it in place; a retried login supersedes it harmlessly.
	body := "Your verification code is " + code.String()
	if err := s.email.Send(ctx, email, challengeEmailSubject, body); err != nil {
		return nil, domain.ErrUnexpected
	}

	return &LoginResult{ChallengeID: id.String(), TwoFactorRequired: true}, nil
}

// VerifyChallenge resolves a pending second factor. A missing challenge,
// mismatched challenge id, or wrong code all map to
// ErrIncorrectCredentials; a failed attempt leaves the pending challenge
// intact, and only a fully matching one consumes it.
func (s *AuthService) VerifyChallenge(ctx context.Context, rawEmail, rawID, rawCode string) (string, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	id, err := domain.ParseChallengeID(rawID)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	code, err := domain.ParseOneTimeCode(rawCode)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	pendingID, pendingCode, err := s.challenges.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			return "", domain.ErrIncorrectCredentials
		}
		return "", domain.ErrUnexpected
	}

	if !pendingID.Equal(id) || !pendingCode.Equal(code) {
		return "", domain.ErrIncorrectCredentials
	}

	// Deletion is the single-use mechanism: a replayed challenge finds
	// nothing pending. A concurrent verification that consumed it first
	// surfaces the same way.
	if err := s.challenges.Remove(ctx, email); err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			return "", domain.ErrIncorrectCredentials
		}
		return "", domain.ErrUnexpected
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", domain.ErrUnexpected
	}
	return token, nil
}

// Logout revokes a session token. The token must validate first: a revoked
// or expired token cannot be logged out again.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return domain.ErrMissingToken
	}

	if _, err := s.tokens.Validate(ctx, rawToken); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return domain.ErrInvalidToken
		}
		return domain.ErrUnexpected
	}

	return s.tokens.Revoke(ctx, rawToken)
}
