package reco

import (
	"context"

	"skinMatch/domain"
)

// Config carries every weight and threshold the scoring engine uses. The
// defaults below are the scoring contract: priority bucketing and the
// avoid-brand penalty assume these exact magnitudes, so overrides loaded from
// the DB may tune them, but the fallback values must never drift.
type Config struct {
	BaseScore float64

	TypeMatchBonus float64

	ConcernMatchBonus float64
	MaxConcernMatches int

	NeedMatchBonus float64

	PreferredBrandBonus float64
	AvoidedBrandPenalty float64

	PriceTierBonus float64

	IngredientBonus          float64
	MaxIngredientMatches     int
	AvoidedIngredientPenalty float64

	TextureBonus float64

	RatingWeight float64
	RatingPivot  float64

	PopularBonus    float64
	NewArrivalBonus float64

	MinScore float64
	MaxScore float64

	HighPriorityCutoff   float64
	MediumPriorityCutoff float64

	// measurement thresholds that trigger history-derived need factors
	LowHydrationBelow   float64
	HighOilinessAbove   float64
	HighSensitivityOver float64
	LowElasticityBelow  float64

	ResultLimit    int
	HistoryWindow  int
	CandidateLimit int

	PriceTiers map[string]PriceTier
}

// PriceTier is a half-open price interval [Min, Max).
type PriceTier struct {
	Min float64
	Max float64
}

// Contains reports whether price falls inside the tier. Max <= 0 means
// unbounded above.
func (t PriceTier) Contains(price float64) bool {
	if price < t.Min {
		return false
	}
	if t.Max > 0 && price >= t.Max {
		return false
	}
	return true
}

const (
	defaultBaseScore = 0.5

	defaultTypeMatchBonus = 0.15

	defaultConcernMatchBonus = 0.10
	defaultMaxConcernMatches = 3

	defaultNeedMatchBonus = 0.20

	defaultPreferredBrandBonus = 0.15
	defaultAvoidedBrandPenalty = 0.30

	defaultPriceTierBonus = 0.10

	defaultIngredientBonus          = 0.05
	defaultMaxIngredientMatches     = 3
	defaultAvoidedIngredientPenalty = 0.30

	defaultTextureBonus = 0.10

	defaultRatingWeight = 0.05
	defaultRatingPivot  = 3.0

	defaultPopularBonus    = 0.05
	defaultNewArrivalBonus = 0.05

	defaultMinScore = 0.1
	defaultMaxScore = 1.0

	defaultHighPriorityCutoff   = 0.8
	defaultMediumPriorityCutoff = 0.6

	defaultLowHydrationBelow   = 50.0
	defaultHighOilinessAbove   = 70.0
	defaultHighSensitivityOver = 60.0
	defaultLowElasticityBelow  = 40.0

	defaultResultLimit    = 20
	defaultHistoryWindow  = 5
	defaultCandidateLimit = 500
)

func DefaultConfig() Config {
	return Config{
		BaseScore: defaultBaseScore,

		TypeMatchBonus: defaultTypeMatchBonus,

		ConcernMatchBonus: defaultConcernMatchBonus,
		MaxConcernMatches: defaultMaxConcernMatches,

		NeedMatchBonus: defaultNeedMatchBonus,

		PreferredBrandBonus: defaultPreferredBrandBonus,
		AvoidedBrandPenalty: defaultAvoidedBrandPenalty,

		PriceTierBonus: defaultPriceTierBonus,

		IngredientBonus:          defaultIngredientBonus,
		MaxIngredientMatches:     defaultMaxIngredientMatches,
		AvoidedIngredientPenalty: defaultAvoidedIngredientPenalty,

		TextureBonus: defaultTextureBonus,

		RatingWeight: defaultRatingWeight,
		RatingPivot:  defaultRatingPivot,

		PopularBonus:    defaultPopularBonus,
		NewArrivalBonus: defaultNewArrivalBonus,

		MinScore: defaultMinScore,
		MaxScore: defaultMaxScore,

		HighPriorityCutoff:   defaultHighPriorityCutoff,
		MediumPriorityCutoff: defaultMediumPriorityCutoff,

		LowHydrationBelow:   defaultLowHydrationBelow,
		HighOilinessAbove:   defaultHighOilinessAbove,
		HighSensitivityOver: defaultHighSensitivityOver,
		LowElasticityBelow:  defaultLowElasticityBelow,

		ResultLimit:    defaultResultLimit,
		HistoryWindow:  defaultHistoryWindow,
		CandidateLimit: defaultCandidateLimit,

		PriceTiers: map[string]PriceTier{
			domain.PriceTierBudget:  {Min: 0, Max: 20000},
			domain.PriceTierMid:     {Min: 20000, Max: 60000},
			domain.PriceTierPremium: {Min: 60000, Max: 0},
		},
	}
}

// read per-scope scoring config from DB.
type ConfigRepository interface {
	GetConfig(ctx context.Context, scope string) (domain.RecoConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error
}
