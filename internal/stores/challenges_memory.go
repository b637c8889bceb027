package stores

import (
	"context"
	"sync"

	"github.com/authgate/backend/internal/domain"
)

type pendingChallenge struct {
	id   domain.ChallengeID
	code domain.OneTimeCode
}

// MemoryChallengeStore holds pending challenges for the process lifetime.
// Challenges are short-lived by nature, so no durable variant exists.
type MemoryChallengeStore struct {
	mu      sync.RWMutex
	pending map[string]pendingChallenge
}

func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{pending: make(map[string]pendingChallenge)}
}

func (s *MemoryChallengeStore) Put(ctx context.Context, email domain.Email, id domain.ChallengeID, code domain.OneTimeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[email.String()] = pendingChallenge{id: id, code: code}
	return nil
}

func (s *MemoryChallengeStore) Get(ctx context.Context, email domain.Email) (domain.ChallengeID, domain.OneTimeCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenge, exists := s.pending[email.String()]
	if !exists {
		return domain.ChallengeID{}, domain.OneTimeCode{}, domain.ErrChallengeNotFound
	}
	return challenge.id, challenge.code, nil
}

func (s *MemoryChallengeStore) Remove(ctx context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pending[email.String()]; !exists {
		return domain.ErrChallengeNotFound
	}
	delete(s.pending, email.String())
	return nil
}
