package catalog

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"
)

// CatalogRepository contract interface
type CatalogRepository interface {
	Create(ctx context.Context, item *domain.CatalogItem) error
	FindByID(ctx context.Context, id uint64) (domain.CatalogItem, error)
	FindAll(ctx context.Context, limit int, category string) ([]domain.CatalogItem, error)
	Update(ctx context.Context, item *domain.CatalogItem) error
	Delete(ctx context.Context, id uint64) error
}

type CatalogService struct {
	catalogRepo CatalogRepository
}

func NewCatalogService(catalogRepo CatalogRepository) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

func (s *CatalogService) GetItems(ctx context.Context, limit int, category string) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	return s.catalogRepo.FindAll(ctx, limit, category)
}

func (s *CatalogService) GetItemByID(ctx context.Context, id uint64) (domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("context error: %w", err)
	}

	return s.catalogRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if item.Name == "" {
		return nil, errors.New("item name is required")
	}
	if item.Category == "" {
		return nil, errors.New("item category is required")
	}
	if item.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}
	if item.Rating < 0 || item.Rating > 5 {
		return nil, errors.New("rating must be between 0 and 5")
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if item.ID == 0 {
		return nil, errors.New("item id is required")
	}
	if item.Name == "" {
		return nil, errors.New("item name is required")
	}
	if item.Rating < 0 || item.Rating > 5 {
		return nil, errors.New("rating must be between 0 and 5")
	}

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	updated, err := s.catalogRepo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		return errors.New("invalid item id")
	}

	return s.catalogRepo.Delete(ctx, id)
}
