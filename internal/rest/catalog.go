package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type CatalogService interface {
	GetItems(ctx context.Context, limit int, category string) ([]domain.CatalogItem, error)
	GetItemByID(ctx context.Context, id uint64) (domain.CatalogItem, error)
	CreateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
	UpdateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
	DeleteItem(ctx context.Context, id uint64) error
}

// CacheInvalidator drops cached catalog snapshots after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type CatalogHandler struct {
	catalogService CatalogService
	cache          CacheInvalidator
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService, cache CacheInvalidator) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		cache:          cache,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CatalogItemRequest struct {
	Name             string   `json:"name" validate:"required"`
	Brand            string   `json:"brand"`
	Category         string   `json:"category" validate:"required"`
	Subcategory      string   `json:"subcategory"`
	Price            float64  `json:"price" validate:"gte=0"`
	Rating           float64  `json:"rating" validate:"gte=0,lte=5"`
	IsPopular        bool     `json:"is_popular"`
	IsNew            bool     `json:"is_new"`
	Tags             []string `json:"tags"`
	Ingredients      []string `json:"ingredients"`
	SuitableTypes    []string `json:"suitable_types"`
	SuitableConcerns []string `json:"suitable_concerns"`
}

func (r CatalogItemRequest) toDomain() *domain.CatalogItem {
	return &domain.CatalogItem{
		Name:             r.Name,
		Brand:            r.Brand,
		Category:         r.Category,
		Subcategory:      r.Subcategory,
		Price:            r.Price,
		Rating:           r.Rating,
		IsPopular:        r.IsPopular,
		IsNew:            r.IsNew,
		Tags:             datatypes.NewJSONSlice(r.Tags),
		Ingredients:      datatypes.NewJSONSlice(r.Ingredients),
		SuitableTypes:    datatypes.NewJSONSlice(r.SuitableTypes),
		SuitableConcerns: datatypes.NewJSONSlice(r.SuitableConcerns),
	}
}

func (h *CatalogHandler) invalidateCache(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate catalog cache", "error", err)
	}
}

func (h *CatalogHandler) GetItems(c echo.Context) error {
	limit := 0
	if n := c.QueryParam("n"); n != "" {
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = parsed
	}
	category := c.QueryParam("category")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.catalogService.GetItems(ctx, limit, category)
	if err != nil {
		logger.Error("Failed to get catalog items", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get catalog items",
		"items":   items,
	})
}

func (h *CatalogHandler) GetItemByID(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.catalogService.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogItemNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find catalog item by id",
		"item":    item,
	})
}

func (h *CatalogHandler) CreateItem(c echo.Context) error {
	var req CatalogItemRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate catalog item request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.catalogService.CreateItem(ctx, req.toDomain())
	if err != nil {
		logger.Error("Failed to create catalog item", err)
		if err.Error() == "item name is required" ||
			err.Error() == "item category is required" ||
			err.Error() == "price cannot be negative" ||
			err.Error() == "rating must be between 0 and 5" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	h.invalidateCache(ctx)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "catalog item successfully created",
		"item":    created,
	})
}

func (h *CatalogHandler) UpdateItem(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req CatalogItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate catalog item request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	item := req.toDomain()
	item.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.catalogService.UpdateItem(ctx, item)
	if err != nil {
		logger.Error("Failed to update catalog item", err)
		if errors.Is(err, domain.ErrCatalogItemNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "item id is required" ||
			err.Error() == "item name is required" ||
			err.Error() == "rating must be between 0 and 5" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	h.invalidateCache(ctx)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update catalog item",
		"item":    updated,
	})
}

func (h *CatalogHandler) DeleteItem(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.catalogService.DeleteItem(ctx, id)
	if err != nil {
		logger.Error("Failed to delete catalog item", err)
		if errors.Is(err, domain.ErrCatalogItemNotFound) || err.Error() == "invalid item id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	h.invalidateCache(ctx)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "catalog item successfully deleted",
		"item_id": id,
	})
}
