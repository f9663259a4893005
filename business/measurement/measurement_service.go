package measurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"
)

// MeasurementRepository contract interface
type MeasurementRepository interface {
	Create(ctx context.Context, snapshot *domain.MeasurementSnapshot) error
	FindRecent(ctx context.Context, userID uint, limit int) ([]domain.MeasurementSnapshot, error)
}

// ProfileAggregator folds snapshot scores into the profile's running
// aggregates.
type ProfileAggregator interface {
	RecordEvaluation(ctx context.Context, userID uint, overallScore float64) error
}

type MeasurementService struct {
	measurementRepo MeasurementRepository
	profiles        ProfileAggregator
}

func NewMeasurementService(measurementRepo MeasurementRepository, profiles ProfileAggregator) *MeasurementService {
	return &MeasurementService{
		measurementRepo: measurementRepo,
		profiles:        profiles,
	}
}

// RecordSnapshot validates and stores one snapshot, then updates the
// profile's running average. The aggregate update is best-effort: the
// snapshot is already durable, so a failed profile update is logged and
// the snapshot stands.
func (s *MeasurementService) RecordSnapshot(ctx context.Context, snapshot *domain.MeasurementSnapshot) (domain.MeasurementSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.MeasurementSnapshot{}, fmt.Errorf("context error: %w", err)
	}

	if snapshot.UserID == 0 {
		return domain.MeasurementSnapshot{}, errors.New("user id is required")
	}
	for name, v := range map[string]float64{
		"hydration":   snapshot.Hydration,
		"oiliness":    snapshot.Oiliness,
		"sensitivity": snapshot.Sensitivity,
		"elasticity":  snapshot.Elasticity,
	} {
		if v < 0 || v > 100 {
			return domain.MeasurementSnapshot{}, fmt.Errorf("%s must be between 0 and 100", name)
		}
	}

	if snapshot.MeasuredAt.IsZero() {
		snapshot.MeasuredAt = time.Now()
	}

	if err := s.measurementRepo.Create(ctx, snapshot); err != nil {
		return domain.MeasurementSnapshot{}, err
	}

	if s.profiles != nil {
		if err := s.profiles.RecordEvaluation(ctx, snapshot.UserID, snapshot.OverallScore()); err != nil {
			logger.Warn("failed to update profile aggregates after snapshot",
				"user_id", snapshot.UserID, "error", err)
		}
	}

	return *snapshot, nil
}

func (s *MeasurementService) GetHistory(ctx context.Context, userID uint, limit int) ([]domain.MeasurementSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 5
	}

	return s.measurementRepo.FindRecent(ctx, userID, limit)
}
