package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/backend/internal/models"
	"gorm.io/gorm"
)

// GormBannedTokenStore persists the revocation set so revoked tokens stay
// dead across restarts.
type GormBannedTokenStore struct {
	db *gorm.DB
}

func NewGormBannedTokenStore(db *gorm.DB) *GormBannedTokenStore {
	return &GormBannedTokenStore{db: db}
}

func (s *GormBannedTokenStore) Ban(ctx context.Context, token string) error {
	entry := models.BannedToken{Token: token}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		// Idempotent: a second ban of the same token hits the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("banning token: %w", err)
	}
	return nil
}

func (s *GormBannedTokenStore) IsBanned(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.BannedToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking banned token: %w", err)
	}
	return count > 0, nil
}
