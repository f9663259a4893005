package reco

import (
	"context"
)

// configScopeDefault is the scope row consulted for every run today. Scoped
// overrides exist so that future catalog types can tune weights without code
// changes.
const configScopeDefault = "default"

// loadConfig reads the scoring config for a scope from the repo, falling back
// to the built-in defaults on any miss or error. Only non-zero stored fields
// override a default, so a sparse DB row keeps sane values everywhere else.
func (s *Service) loadConfig(ctx context.Context, scope string) Config {
	cfg := s.defaultCfg

	if s.cfgRepo == nil {
		return cfg
	}

	dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, scope)
	if err != nil || !ok {
		return cfg
	}

	if dbCfg.ResultLimit > 0 {
		cfg.ResultLimit = dbCfg.ResultLimit
	}

	w := dbCfg.Weights
	if w.BaseScore > 0 {
		cfg.BaseScore = w.BaseScore
	}
	if w.TypeMatchBonus > 0 {
		cfg.TypeMatchBonus = w.TypeMatchBonus
	}
	if w.ConcernMatchBonus > 0 {
		cfg.ConcernMatchBonus = w.ConcernMatchBonus
	}
	if w.NeedMatchBonus > 0 {
		cfg.NeedMatchBonus = w.NeedMatchBonus
	}
	if w.PreferredBrandBonus > 0 {
		cfg.PreferredBrandBonus = w.PreferredBrandBonus
	}
	if w.AvoidedBrandPenalty > 0 {
		cfg.AvoidedBrandPenalty = w.AvoidedBrandPenalty
	}
	if w.PriceTierBonus > 0 {
		cfg.PriceTierBonus = w.PriceTierBonus
	}
	if w.IngredientBonus > 0 {
		cfg.IngredientBonus = w.IngredientBonus
	}
	if w.AvoidedIngredientPenalty > 0 {
		cfg.AvoidedIngredientPenalty = w.AvoidedIngredientPenalty
	}
	if w.TextureBonus > 0 {
		cfg.TextureBonus = w.TextureBonus
	}
	if w.RatingWeight > 0 {
		cfg.RatingWeight = w.RatingWeight
	}
	if w.PopularBonus > 0 {
		cfg.PopularBonus = w.PopularBonus
	}
	if w.NewArrivalBonus > 0 {
		cfg.NewArrivalBonus = w.NewArrivalBonus
	}

	return cfg
}
