package reco

import (
	"fmt"
	"strings"

	"skinMatch/domain"
)

// Remedy tags a catalog item must carry for a measured need to count.
const (
	TagHydrating  = "hydrating"
	TagOilControl = "oil-control"
	TagSoothing   = "soothing"
	TagFirming    = "firming"
)

// factorHit is one firing of a factor: a bounded score delta and the single
// human-readable reason that explains it.
type factorHit struct {
	delta  float64
	reason string
}

type factor struct {
	name string
	eval func(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit
}

// scoringFactors is the engine. Order is fixed: all deltas are commutative
// additions so the final score never depends on it, but the reason list
// follows evaluation order and is part of the observable output.
var scoringFactors = []factor{
	{name: "type_match", eval: evalTypeMatch},
	{name: "concern_overlap", eval: evalConcernOverlap},
	{name: "measured_need", eval: evalMeasuredNeed},
	{name: "brand_preference", eval: evalBrandPreference},
	{name: "price_tier", eval: evalPriceTier},
	{name: "ingredient_preference", eval: evalIngredientPreference},
	{name: "texture_preference", eval: evalTexturePreference},
	{name: "rating", eval: evalRating},
	{name: "popularity", eval: evalPopularity},
}

// ---- matchers ----

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

// concernsOverlap matches case-insensitively in both substring directions, so
// a stated "모공" matches an item targeting "모공 관리" and vice versa.
func concernsOverlap(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func hasTag(item domain.CatalogItem, tag string) bool {
	return containsFold(item.Tags, tag)
}

// ---- factors ----

func evalTypeMatch(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	if sc.Profile.SkinType == "" {
		return nil
	}
	if !containsFold(item.SuitableTypes, sc.Profile.SkinType) {
		return nil
	}
	return []factorHit{{
		delta:  cfg.TypeMatchBonus,
		reason: "matches your skin type",
	}}
}

func evalConcernOverlap(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	if len(sc.Profile.Concerns) == 0 || len(item.SuitableConcerns) == 0 {
		return nil
	}

	matched := make([]string, 0, cfg.MaxConcernMatches)
	for _, concern := range sc.Profile.Concerns {
		if len(matched) >= cfg.MaxConcernMatches {
			break
		}
		for _, target := range item.SuitableConcerns {
			if concernsOverlap(concern, target) {
				matched = append(matched, concern)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil
	}

	return []factorHit{{
		delta:  cfg.ConcernMatchBonus * float64(len(matched)),
		reason: fmt.Sprintf("targets your concerns: %s", strings.Join(matched, ", ")),
	}}
}

// evalMeasuredNeed reads the latest snapshot only; each tracked attribute
// fires independently when its threshold is crossed and the item carries the
// matching remedy tag.
func evalMeasuredNeed(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	latest := sc.Latest()
	if latest == nil {
		return nil
	}

	var hits []factorHit

	if latest.Hydration < cfg.LowHydrationBelow && hasTag(item, TagHydrating) {
		hits = append(hits, factorHit{
			delta:  cfg.NeedMatchBonus,
			reason: "helps with your low hydration",
		})
	}
	if latest.Oiliness > cfg.HighOilinessAbove && hasTag(item, TagOilControl) {
		hits = append(hits, factorHit{
			delta:  cfg.NeedMatchBonus,
			reason: "helps control excess oil",
		})
	}
	if latest.Sensitivity > cfg.HighSensitivityOver && hasTag(item, TagSoothing) {
		hits = append(hits, factorHit{
			delta:  cfg.NeedMatchBonus,
			reason: "soothes your sensitive skin",
		})
	}
	if latest.Elasticity > 0 && latest.Elasticity < cfg.LowElasticityBelow && hasTag(item, TagFirming) {
		hits = append(hits, factorHit{
			delta:  cfg.NeedMatchBonus,
			reason: "supports skin elasticity",
		})
	}

	return hits
}

// evalBrandPreference: the avoid penalty intentionally outweighs the prefer
// bonus so an avoided brand rarely surfaces even when otherwise well matched.
func evalBrandPreference(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	prefs := sc.Preferences
	if prefs == nil || item.Brand == "" {
		return nil
	}

	var hits []factorHit

	if containsFold(prefs.PreferredBrands, item.Brand) {
		hits = append(hits, factorHit{
			delta:  cfg.PreferredBrandBonus,
			reason: "from a brand you prefer",
		})
	}
	if containsFold(prefs.AvoidedBrands, item.Brand) {
		hits = append(hits, factorHit{
			delta:  -cfg.AvoidedBrandPenalty,
			reason: "from a brand you avoid",
		})
	}

	return hits
}

func evalPriceTier(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	tierName := sc.Preferences.PriceTierFor(item.Category)
	if tierName == "" {
		return nil
	}

	tier, ok := cfg.PriceTiers[strings.ToLower(tierName)]
	if !ok {
		// unknown tier name from an old client: treated as absent
		return nil
	}
	if !tier.Contains(item.Price) {
		return nil
	}

	return []factorHit{{
		delta:  cfg.PriceTierBonus,
		reason: "fits your price range",
	}}
}

func evalIngredientPreference(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	prefs := sc.Preferences
	if prefs == nil || len(item.Ingredients) == 0 {
		return nil
	}

	var hits []factorHit

	matched := make([]string, 0, cfg.MaxIngredientMatches)
	for _, fav := range prefs.FavoredIngredients {
		if len(matched) >= cfg.MaxIngredientMatches {
			break
		}
		for _, ing := range item.Ingredients {
			if concernsOverlap(fav, ing) {
				matched = append(matched, fav)
				break
			}
		}
	}
	if len(matched) > 0 {
		hits = append(hits, factorHit{
			delta:  cfg.IngredientBonus * float64(len(matched)),
			reason: fmt.Sprintf("contains ingredients you like: %s", strings.Join(matched, ", ")),
		})
	}

	for _, avoided := range prefs.AvoidedIngredients {
		found := false
		for _, ing := range item.Ingredients {
			if concernsOverlap(avoided, ing) {
				found = true
				break
			}
		}
		if found {
			hits = append(hits, factorHit{
				delta:  -cfg.AvoidedIngredientPenalty,
				reason: fmt.Sprintf("contains an ingredient you avoid: %s", avoided),
			})
			break // one penalty regardless of how many avoided ingredients match
		}
	}

	return hits
}

func evalTexturePreference(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	prefs := sc.Preferences
	if prefs == nil {
		return nil
	}

	for _, texture := range prefs.PreferredTextures {
		if containsFold(item.Tags, texture) {
			return []factorHit{{
				delta:  cfg.TextureBonus,
				reason: fmt.Sprintf("%s texture you enjoy", strings.ToLower(texture)),
			}}
		}
	}

	return nil
}

// evalRating applies unconditionally; the delta can be negative. Ratings are
// clamped into [0, 5] so malformed catalog rows stay harmless.
func evalRating(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	rating := item.Rating
	if rating < 0 {
		rating = 0
	} else if rating > 5 {
		rating = 5
	}

	delta := (rating - cfg.RatingPivot) * cfg.RatingWeight
	if delta == 0 {
		return nil
	}

	reason := "highly rated by other users"
	if delta < 0 {
		reason = "rated below average"
	}

	return []factorHit{{delta: delta, reason: reason}}
}

func evalPopularity(cfg Config, sc ScoringContext, item domain.CatalogItem) []factorHit {
	var hits []factorHit

	if item.IsPopular {
		hits = append(hits, factorHit{
			delta:  cfg.PopularBonus,
			reason: "popular right now",
		})
	}
	if item.IsNew {
		hits = append(hits, factorHit{
			delta:  cfg.NewArrivalBonus,
			reason: "new arrival",
		})
	}

	return hits
}
