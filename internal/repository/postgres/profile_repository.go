package postgres

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (domain.SkinProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.SkinProfile{}, fmt.Errorf("context error: %w", err)
	}

	var profile domain.SkinProfile

	err := r.DB.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SkinProfile{}, domain.ErrProfileNotFound
		}
		return domain.SkinProfile{}, fmt.Errorf("failed to find skin profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *domain.SkinProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"skin_type", "concerns", "updated_at"}),
		},
	).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to save skin profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) UpdateAggregates(ctx context.Context, userID uint, avgScore float64, totalEvaluations int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.SkinProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"avg_skin_score":    avgScore,
			"total_evaluations": totalEvaluations,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update profile aggregates: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}
