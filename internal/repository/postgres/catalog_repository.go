package postgres

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create catalog item: %w", err)
	}

	return nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id uint64) (domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.CatalogItem

	err := r.DB.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CatalogItem{}, domain.ErrCatalogItemNotFound
		}
		return domain.CatalogItem{}, fmt.Errorf("failed to find catalog item: %w", err)
	}

	return item, nil
}

// FindAll returns up to limit items, optionally restricted to one category.
func (r *CatalogRepository) FindAll(ctx context.Context, limit int, category string) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []domain.CatalogItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find catalog items: %w", err)
	}

	return items, nil
}

func (r *CatalogRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":              item.Name,
		"brand":             item.Brand,
		"category":          item.Category,
		"subcategory":       item.Subcategory,
		"price":             item.Price,
		"rating":            item.Rating,
		"is_popular":        item.IsPopular,
		"is_new":            item.IsNew,
		"tags":              item.Tags,
		"ingredients":       item.Ingredients,
		"suitable_types":    item.SuitableTypes,
		"suitable_concerns": item.SuitableConcerns,
	}

	result := r.DB.WithContext(ctx).Model(&domain.CatalogItem{}).Where("id = ?", item.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update catalog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCatalogItemNotFound
	}

	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.CatalogItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete catalog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCatalogItemNotFound
	}

	return nil
}
