package preferences

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"
)

// PreferencesRepository contract interface
type PreferencesRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserPreferences, error)
	Save(ctx context.Context, prefs *domain.UserPreferences) error
	Delete(ctx context.Context, userID uint) error
}

type PreferencesService struct {
	prefsRepo PreferencesRepository
}

func NewPreferencesService(prefsRepo PreferencesRepository) *PreferencesService {
	return &PreferencesService{
		prefsRepo: prefsRepo,
	}
}

func (s *PreferencesService) GetPreferences(ctx context.Context, userID uint) (domain.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("context error: %w", err)
	}

	return s.prefsRepo.FindByUserID(ctx, userID)
}

// SavePreferences validates and stores the user's stated preferences.
// Preferences are optional everywhere downstream, so deleting them is a
// legitimate way to reset.
func (s *PreferencesService) SavePreferences(ctx context.Context, prefs *domain.UserPreferences) (domain.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("context error: %w", err)
	}

	if prefs.UserID == 0 {
		return domain.UserPreferences{}, errors.New("user id is required")
	}
	if prefs.Boldness < 1 || prefs.Boldness > 5 {
		return domain.UserPreferences{}, errors.New("boldness must be between 1 and 5")
	}

	for category, tier := range prefs.PriceTierByCategory {
		tierName, ok := tier.(string)
		if !ok {
			return domain.UserPreferences{}, fmt.Errorf("invalid price tier for category %s", category)
		}
		switch tierName {
		case domain.PriceTierBudget, domain.PriceTierMid, domain.PriceTierPremium:
		default:
			return domain.UserPreferences{}, fmt.Errorf("unknown price tier: %s", tierName)
		}
	}

	if err := s.prefsRepo.Save(ctx, prefs); err != nil {
		return domain.UserPreferences{}, err
	}

	return *prefs, nil
}

func (s *PreferencesService) DeletePreferences(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return s.prefsRepo.Delete(ctx, userID)
}
