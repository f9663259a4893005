package postgres

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// Upsert inserts or updates the row keyed by (user_id, product_id). On
// conflict only the recompute-owned columns are assigned; clicked/purchased
// are deliberately absent from the column list so engagement state survives
// every recompute. Returning refreshes the passed record with the row as
// persisted (existing id, flags, created_at).
func (r *RecommendationRepository) Upsert(ctx context.Context, rec *domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "reasons", "category", "priority", "updated_at",
			}),
		},
		clause.Returning{},
	).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to upsert recommendation: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var recs []domain.Recommendation

	query := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC, product_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	return recs, nil
}

func (r *RecommendationRepository) FindByUserAndProduct(ctx context.Context, userID uint, productID uint64) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	var rec domain.Recommendation

	err := r.DB.WithContext(ctx).
		First(&rec, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recommendation{}, domain.ErrRecommendationNotFound
		}
		return domain.Recommendation{}, fmt.Errorf("failed to find recommendation: %w", err)
	}

	return rec, nil
}

func (r *RecommendationRepository) MarkClicked(ctx context.Context, userID uint, productID uint64) error {
	return r.markFlag(ctx, userID, productID, "clicked")
}

func (r *RecommendationRepository) MarkPurchased(ctx context.Context, userID uint, productID uint64) error {
	return r.markFlag(ctx, userID, productID, "purchased")
}

func (r *RecommendationRepository) markFlag(ctx context.Context, userID uint, productID uint64, column string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Recommendation{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update(column, true)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s flag: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecommendationNotFound
	}

	return nil
}
