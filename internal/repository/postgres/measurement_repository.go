package postgres

import (
	"context"
	"fmt"

	"skinMatch/domain"

	"gorm.io/gorm"
)

type MeasurementRepository struct {
	DB *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{DB: db}
}

func (r *MeasurementRepository) Create(ctx context.Context, snapshot *domain.MeasurementSnapshot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to create measurement snapshot: %w", err)
	}

	return nil
}

// FindRecent returns up to limit snapshots for a user, newest first.
func (r *MeasurementRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]domain.MeasurementSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 5
	}

	var snapshots []domain.MeasurementSnapshot

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at DESC").
		Limit(limit).
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find measurement snapshots: %w", err)
	}

	return snapshots, nil
}
