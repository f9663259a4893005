package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type MeasurementService interface {
	RecordSnapshot(ctx context.Context, snapshot *domain.MeasurementSnapshot) (domain.MeasurementSnapshot, error)
	GetHistory(ctx context.Context, userID uint, limit int) ([]domain.MeasurementSnapshot, error)
}

// RecoGenerator recomputes a user's recommendation set. A new snapshot
// changes the measured-need signals, so intake kicks off a recompute.
type RecoGenerator interface {
	Generate(ctx context.Context, userID uint) ([]domain.Recommendation, error)
}

type MeasurementHandler struct {
	measurementService MeasurementService
	recoGenerator      RecoGenerator
	validator          *validator.Validate
	timeout            time.Duration
}

func NewMeasurementHandler(measurementService MeasurementService, recoGenerator RecoGenerator) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
		recoGenerator:      recoGenerator,
		validator:          validator.New(),
		timeout:            10 * time.Second,
	}
}

type RecordSnapshotRequest struct {
	Hydration   float64    `json:"hydration" validate:"min=0,max=100"`
	Oiliness    float64    `json:"oiliness" validate:"min=0,max=100"`
	Sensitivity float64    `json:"sensitivity" validate:"min=0,max=100"`
	Elasticity  float64    `json:"elasticity" validate:"min=0,max=100"`
	MeasuredAt  *time.Time `json:"measured_at"`
}

func (h *MeasurementHandler) RecordSnapshot(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecordSnapshotRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate measurement request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	snapshot := &domain.MeasurementSnapshot{
		UserID:      userID,
		Hydration:   req.Hydration,
		Oiliness:    req.Oiliness,
		Sensitivity: req.Sensitivity,
		Elasticity:  req.Elasticity,
	}
	if req.MeasuredAt != nil {
		snapshot.MeasuredAt = *req.MeasuredAt
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.measurementService.RecordSnapshot(ctx, snapshot)
	if err != nil {
		logger.Error("Failed to record measurement snapshot", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	// Recompute recommendations off the request path; the snapshot response
	// does not wait for scoring.
	if h.recoGenerator != nil {
		go func(uid uint) {
			bgCtx, bgCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer bgCancel()

			if _, err := h.recoGenerator.Generate(bgCtx, uid); err != nil {
				logger.Warn("background recommendation recompute failed", "user_id", uid, "error", err)
			}
		}(userID)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "measurement recorded",
		"snapshot": saved,
	})
}

func (h *MeasurementHandler) GetHistory(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit := 0
	if n := c.QueryParam("n"); n != "" {
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	history, err := h.measurementService.GetHistory(ctx, userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get measurement history",
		"history": history,
	})
}
