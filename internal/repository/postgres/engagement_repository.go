package postgres

import (
	"context"
	"fmt"

	"skinMatch/domain"

	"gorm.io/gorm"
)

type EngagementRepository struct {
	DB *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{DB: db}
}

func (r *EngagementRepository) SaveEvent(ctx context.Context, event domain.EngagementEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save engagement event: %w", err)
	}

	return nil
}
