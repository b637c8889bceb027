package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/models"
	"github.com/authgate/backend/pkg/utils"
	"gorm.io/gorm"
)

// GormUserStore is the durable implementation. Atomic add-if-absent is
// delegated to the unique index on email; the connection must be opened
// with gorm.Config.TranslateError so duplicates surface as
// gorm.ErrDuplicatedKey.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Add(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *GormUserStore) Get(ctx context.Context, email domain.Email) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error {
	user, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(password.Reveal(), user.PasswordHash) {
		return domain.ErrIncorrectCredentials
	}
	return nil
}
