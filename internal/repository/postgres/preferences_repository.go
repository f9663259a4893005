package postgres

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepository struct {
	DB *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{DB: db}
}

func (r *PreferencesRepository) FindByUserID(ctx context.Context, userID uint) (domain.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("context error: %w", err)
	}

	var prefs domain.UserPreferences

	err := r.DB.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserPreferences{}, domain.ErrPreferencesNotFound
		}
		return domain.UserPreferences{}, fmt.Errorf("failed to find preferences: %w", err)
	}

	return prefs, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, prefs *domain.UserPreferences) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"preferred_brands", "avoided_brands", "favored_ingredients",
				"avoided_ingredients", "preferred_textures",
				"price_tier_by_category", "boldness", "updated_at",
			}),
		},
	).Create(prefs).Error; err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}

func (r *PreferencesRepository) Delete(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.UserPreferences{}, "user_id = ?", userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete preferences: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPreferencesNotFound
	}

	return nil
}
