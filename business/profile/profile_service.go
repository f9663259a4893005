package profile

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"
	"skinMatch/pkg/logger"

	"gorm.io/datatypes"
)

// ProfileRepository contract interface
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.SkinProfile, error)
	Save(ctx context.Context, profile *domain.SkinProfile) error
	UpdateAggregates(ctx context.Context, userID uint, avgScore float64, totalEvaluations int) error
}

type ProfileService struct {
	profileRepo ProfileRepository
}

func NewProfileService(profileRepo ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

var validSkinTypes = map[string]bool{
	domain.SkinTypeOily:        true,
	domain.SkinTypeDry:         true,
	domain.SkinTypeCombination: true,
	domain.SkinTypeSensitive:   true,
	domain.SkinTypeNormal:      true,
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (domain.SkinProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.SkinProfile{}, fmt.Errorf("context error: %w", err)
	}

	return s.profileRepo.FindByUserID(ctx, userID)
}

// SaveProfile creates or replaces the user's skin profile. The running
// aggregates are never overwritten here; they belong to measurement intake.
func (s *ProfileService) SaveProfile(ctx context.Context, userID uint, skinType string, concerns []string) (domain.SkinProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.SkinProfile{}, fmt.Errorf("context error: %w", err)
	}

	if !validSkinTypes[skinType] {
		return domain.SkinProfile{}, errors.New("invalid skin type")
	}

	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return domain.SkinProfile{}, err
	}

	profile := domain.SkinProfile{
		UserID:           userID,
		SkinType:         skinType,
		Concerns:         datatypes.NewJSONSlice(concerns),
		AvgSkinScore:     existing.AvgSkinScore,
		TotalEvaluations: existing.TotalEvaluations,
	}

	if err := s.profileRepo.Save(ctx, &profile); err != nil {
		logger.Error("failed to save skin profile", "user_id", userID, "error", err)
		return domain.SkinProfile{}, err
	}

	return profile, nil
}

// RecordEvaluation folds one 0-100 overall skin score into the profile's
// running average.
func (s *ProfileService) RecordEvaluation(ctx context.Context, userID uint, overallScore float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	total := profile.TotalEvaluations + 1
	avg := profile.AvgSkinScore + (overallScore-profile.AvgSkinScore)/float64(total)

	return s.profileRepo.UpdateAggregates(ctx, userID, avg, total)
}
