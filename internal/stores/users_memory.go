package stores

import (
	"context"
	"sync"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/models"
	"github.com/authgate/backend/pkg/utils"
)

// MemoryUserStore is the process-lifetime reference implementation. A
// single RWMutex serializes writers against the map; each exported method
// is one atomic logical operation.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Add(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return domain.ErrUserExists
	}
	s.users[user.Email] = *user
	return nil
}

func (s *MemoryUserStore) Get(ctx context.Context, email domain.Email) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[email.String()]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryUserStore) ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[email.String()]
	if !exists {
		return domain.ErrUserNotFound
	}
	if !utils.CheckPassword(password.Reveal(), user.PasswordHash) {
		return domain.ErrIncorrectCredentials
	}
	return nil
}
