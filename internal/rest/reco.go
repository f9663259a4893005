package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"
	"skinMatch/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecoHandler struct {
		validate    *validator.Validate
		recoService RecoService
	}

	RecoService interface {
		Generate(ctx context.Context, userID uint) ([]domain.Recommendation, error)
		ListForUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
		RecordEngagement(ctx context.Context, userID uint, productID uint64, eventType string, eventCtx map[string]any) error
	}

	ListQuery struct {
		N int `query:"n"`
	}

	FeedbackRequest struct {
		ProductID uint64         `json:"product_id" validate:"required"`
		EventType string         `json:"event_type" validate:"required,oneof=click purchase"`
		Context   map[string]any `json:"context"`
	}
)

func NewRecoHandler(svc RecoService) *RecoHandler {
	return &RecoHandler{
		validate:    validator.New(),
		recoService: svc,
	}
}

// POST /api/v1/recommendations/generate
func (h *RecoHandler) Generate(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	start := time.Now()
	recs, err := h.recoService.Generate(c.Request().Context(), userID)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to generate recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendTotal.Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations?n=20
func (h *RecoHandler) List(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	recs, err := h.recoService.ListForUser(c.Request().Context(), userID, q.N)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// POST /api/v1/recommendations/feedback
func (h *RecoHandler) Feedback(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	err := h.recoService.RecordEngagement(c.Request().Context(), userID, req.ProductID, req.EventType, req.Context)
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}
