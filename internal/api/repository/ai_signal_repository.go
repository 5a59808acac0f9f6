package repository

import (
	"context"
	"time"

	"market-lens/internal/entity"

	"gorm.io/gorm"
)

type aiSignalRepository struct {
	db *gorm.DB
}

// NewAISignalRepository creates a gorm-backed AISignalRepository.
func NewAISignalRepository(db *gorm.DB) AISignalRepository {
	return &aiSignalRepository{db: db}
}

func (s *aiSignalRepository) Create(ctx context.Context, signal *entity.AISignal) error {
	return s.db.WithContext(ctx).Create(signal).Error
}

// DeleteOlderThan hard-deletes signal rows created before the cutoff and
// returns the number of rows removed.
func (s *aiSignalRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&entity.AISignal{})
	return result.RowsAffected, result.Error
}
