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
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (domain.SkinProfile, error)
	SaveProfile(ctx context.Context, userID uint, skinType string, concerns []string) (domain.SkinProfile, error)
}

type ProfileHandler struct {
	profileService ProfileService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type SaveProfileRequest struct {
	SkinType string   `json:"skin_type" validate:"required,oneof=oily dry combination sensitive normal"`
	Concerns []string `json:"concerns"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get skin profile",
		"profile": profile,
	})
}

func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SaveProfileRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate profile request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.profileService.SaveProfile(ctx, userID, req.SkinType, req.Concerns)
	if err != nil {
		logger.Error("Failed to save skin profile", err)
		if err.Error() == "invalid skin type" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "skin profile saved",
		"profile": profile,
	})
}
