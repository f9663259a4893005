package reco

import (
	"context"
	"errors"
	"fmt"

	"skinMatch/domain"
	"skinMatch/pkg/logger"
)

// ScoringContext bundles every per-user input one scoring run reads. It is
// built fresh per invocation; the engine itself holds no mutable state.
type ScoringContext struct {
	Profile domain.SkinProfile

	// nil when the user never stated preferences.
	Preferences *domain.UserPreferences

	// Up to HistoryWindow snapshots, newest first. Empty when the user has
	// no measurements yet.
	History []domain.MeasurementSnapshot
}

// Latest returns the most recent snapshot, or nil when there is no history.
func (sc ScoringContext) Latest() *domain.MeasurementSnapshot {
	if len(sc.History) == 0 {
		return nil
	}
	return &sc.History[0]
}

// buildScoringContext performs the bulk reads for one user. The profile is
// required; a missing profile surfaces domain.ErrProfileNotFound and is fatal
// to the run. Preferences and measurement history degrade to absent - a
// repository failure on either is logged and scoring proceeds on the
// remaining signals.
func (s *Service) buildScoringContext(ctx context.Context, userID uint, cfg Config) (ScoringContext, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return ScoringContext{}, fmt.Errorf("user %d: %w", userID, domain.ErrProfileNotFound)
		}
		return ScoringContext{}, fmt.Errorf("load skin profile: %w", err)
	}

	sc := ScoringContext{Profile: profile}

	if s.prefsRepo != nil {
		prefs, err := s.prefsRepo.FindByUserID(ctx, userID)
		switch {
		case err == nil:
			sc.Preferences = &prefs
		case errors.Is(err, domain.ErrPreferencesNotFound):
			// fine - scoring runs without preference signals
		default:
			logger.Warn("preferences lookup failed, scoring without preferences",
				"user_id", userID, "error", err)
		}
	}

	if s.measurementRepo != nil {
		history, err := s.measurementRepo.FindRecent(ctx, userID, cfg.HistoryWindow)
		if err != nil {
			logger.Warn("measurement history lookup failed, scoring without history",
				"user_id", userID, "error", err)
		} else {
			sc.History = history
		}
	}

	return sc, nil
}
