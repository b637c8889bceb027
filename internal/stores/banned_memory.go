package stores

import (
	"context"
	"sync"
)

// MemoryBannedTokenStore keeps the revocation set in a process-lifetime
// map. Entries are never removed; banned tokens carry their own expiry, so
// the set only grows by one entry per logout.
type MemoryBannedTokenStore struct {
	mu     sync.RWMutex
	banned map[string]struct{}
}

func NewMemoryBannedTokenStore() *MemoryBannedTokenStore {
	return &MemoryBannedTokenStore{banned: make(map[string]struct{})}
}

func (s *MemoryBannedTokenStore) Ban(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.banned[token] = struct{}{}
	return nil
}

func (s *MemoryBannedTokenStore) IsBanned(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.banned[token]
	return exists, nil
}
