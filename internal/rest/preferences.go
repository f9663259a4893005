package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type PreferencesService interface {
	GetPreferences(ctx context.Context, userID uint) (domain.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *domain.UserPreferences) (domain.UserPreferences, error)
	DeletePreferences(ctx context.Context, userID uint) error
}

type PreferencesHandler struct {
	prefsService PreferencesService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewPreferencesHandler(prefsService PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		prefsService: prefsService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type SavePreferencesRequest struct {
	PreferredBrands     []string          `json:"preferred_brands"`
	AvoidedBrands       []string          `json:"avoided_brands"`
	FavoredIngredients  []string          `json:"favored_ingredients"`
	AvoidedIngredients  []string          `json:"avoided_ingredients"`
	PreferredTextures   []string          `json:"preferred_textures"`
	PriceTierByCategory map[string]string `json:"price_tier_by_category"`
	Boldness            int               `json:"boldness" validate:"omitempty,min=1,max=5"`
}

func (h *PreferencesHandler) GetPreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prefs, err := h.prefsService.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "successfully get preferences",
		"preferences": prefs,
	})
}

func (h *PreferencesHandler) SavePreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SavePreferencesRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate preferences request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Boldness == 0 {
		req.Boldness = 3
	}

	tiers := datatypes.JSONMap{}
	for category, tier := range req.PriceTierByCategory {
		tiers[category] = tier
	}

	prefs := &domain.UserPreferences{
		UserID:              userID,
		PreferredBrands:     datatypes.NewJSONSlice(req.PreferredBrands),
		AvoidedBrands:       datatypes.NewJSONSlice(req.AvoidedBrands),
		FavoredIngredients:  datatypes.NewJSONSlice(req.FavoredIngredients),
		AvoidedIngredients:  datatypes.NewJSONSlice(req.AvoidedIngredients),
		PreferredTextures:   datatypes.NewJSONSlice(req.PreferredTextures),
		PriceTierByCategory: tiers,
		Boldness:            req.Boldness,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.prefsService.SavePreferences(ctx, prefs)
	if err != nil {
		logger.Error("Failed to save preferences", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "preferences saved",
		"preferences": saved,
	})
}

func (h *PreferencesHandler) DeletePreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.prefsService.DeletePreferences(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "preferences deleted",
	})
}
