//go:build !integration

package reco

import (
	"math"
	"reflect"
	"testing"
	"time"

	"skinMatch/domain"

	"gorm.io/datatypes"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func oilyContext() ScoringContext {
	return ScoringContext{
		Profile: domain.SkinProfile{
			UserID:   1,
			SkinType: domain.SkinTypeOily,
			Concerns: datatypes.NewJSONSlice([]string{"pore"}),
		},
	}
}

func neutralItem(id uint64) domain.CatalogItem {
	return domain.CatalogItem{
		ID:       id,
		Name:     "plain toner",
		Category: "toner",
		Rating:   3.0,
	}
}

func TestScoreItem_NoSignalsStaysAtBase(t *testing.T) {
	cfg := DefaultConfig()
	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}

	got := ScoreItem(cfg, sc, neutralItem(10))

	if !almostEqual(got.Score, 0.5) {
		t.Fatalf("expected base score 0.5, got %v", got.Score)
	}
	if got.Priority != domain.PriorityLow {
		t.Fatalf("expected low priority, got %s", got.Priority)
	}
	if len(got.Reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", got.Reasons)
	}
}

func TestScoreItem_StackedBonusesClampToMax(t *testing.T) {
	cfg := DefaultConfig()

	sc := oilyContext()
	sc.Preferences = &domain.UserPreferences{
		UserID:          1,
		PreferredBrands: datatypes.NewJSONSlice([]string{"GlowLab"}),
	}
	sc.History = []domain.MeasurementSnapshot{
		{UserID: 1, Hydration: 30, Oiliness: 50, Sensitivity: 20, Elasticity: 60, MeasuredAt: time.Now()},
	}

	item := domain.CatalogItem{
		ID:               42,
		Name:             "hydra serum",
		Brand:            "GlowLab",
		Category:         "serum",
		Rating:           3.0,
		Tags:             datatypes.NewJSONSlice([]string{"hydrating"}),
		SuitableTypes:    datatypes.NewJSONSlice([]string{"oily"}),
		SuitableConcerns: datatypes.NewJSONSlice([]string{"pore care"}),
	}

	got := ScoreItem(cfg, sc, item)

	// 0.5 + 0.15 + 0.10 + 0.20 + 0.15 = 1.10 before clamping
	if got.Score != cfg.MaxScore {
		t.Fatalf("expected clamp to %v, got %v", cfg.MaxScore, got.Score)
	}
	if got.Priority != domain.PriorityHigh {
		t.Fatalf("expected high priority, got %s", got.Priority)
	}

	want := []string{
		"matches your skin type",
		"targets your concerns: pore",
		"helps with your low hydration",
		"from a brand you prefer",
	}
	if !reflect.DeepEqual(got.Reasons, want) {
		t.Fatalf("reason trail mismatch:\n got  %v\n want %v", got.Reasons, want)
	}
}

func TestScoreItem_AvoidedBrandOutweighsPreferredBonus(t *testing.T) {
	cfg := DefaultConfig()

	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}
	sc.Preferences = &domain.UserPreferences{
		UserID:        1,
		AvoidedBrands: datatypes.NewJSONSlice([]string{"BadCo"}),
	}

	item := neutralItem(7)
	item.Brand = "badco" // brand match is case-insensitive

	got := ScoreItem(cfg, sc, item)

	if !almostEqual(got.Score, 0.2) {
		t.Fatalf("expected 0.2, got %v", got.Score)
	}
	if got.Priority != domain.PriorityLow {
		t.Fatalf("expected low priority, got %s", got.Priority)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "from a brand you avoid" {
		t.Fatalf("unexpected reasons: %v", got.Reasons)
	}
}

func TestScoreItem_PenaltiesClampToFloor(t *testing.T) {
	cfg := DefaultConfig()

	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}
	sc.Preferences = &domain.UserPreferences{
		UserID:             1,
		AvoidedBrands:      datatypes.NewJSONSlice([]string{"BadCo"}),
		AvoidedIngredients: datatypes.NewJSONSlice([]string{"alcohol", "fragrance"}),
	}

	item := neutralItem(8)
	item.Brand = "BadCo"
	item.Ingredients = datatypes.NewJSONSlice([]string{"alcohol denat", "fragrance"})

	got := ScoreItem(cfg, sc, item)

	// -0.30 brand, -0.30 ingredient (one penalty even with two matches)
	if !almostEqual(got.Score, cfg.MinScore) {
		t.Fatalf("expected floor %v, got %v", cfg.MinScore, got.Score)
	}

	penaltyReasons := 0
	for _, r := range got.Reasons {
		if r == "contains an ingredient you avoid: alcohol" {
			penaltyReasons++
		}
		if r == "contains an ingredient you avoid: fragrance" {
			t.Fatalf("second avoided-ingredient penalty must not fire: %v", got.Reasons)
		}
	}
	if penaltyReasons != 1 {
		t.Fatalf("expected exactly one avoided-ingredient reason, got %v", got.Reasons)
	}
}

func TestScoreItem_RatingAppliesWithoutOtherSignals(t *testing.T) {
	cfg := DefaultConfig()
	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}

	item := neutralItem(9)
	item.Rating = 5.0

	got := ScoreItem(cfg, sc, item)

	if !almostEqual(got.Score, 0.6) {
		t.Fatalf("expected 0.6, got %v", got.Score)
	}
	if got.Priority != domain.PriorityMedium {
		t.Fatalf("expected medium priority, got %s", got.Priority)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "highly rated by other users" {
		t.Fatalf("unexpected reasons: %v", got.Reasons)
	}

	item.Rating = 1.0
	got = ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.4) {
		t.Fatalf("expected 0.4, got %v", got.Score)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "rated below average" {
		t.Fatalf("unexpected reasons: %v", got.Reasons)
	}

	item.Rating = 0
	got = ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.35) {
		t.Fatalf("expected 0.35 for zero rating, got %v", got.Score)
	}
	if got.Reasons[0] != "rated below average" {
		t.Fatalf("unexpected reasons for zero-rated item: %v", got.Reasons)
	}
}

func TestScoreItem_RatingOutOfRangeIsClamped(t *testing.T) {
	cfg := DefaultConfig()
	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}

	item := neutralItem(11)
	item.Rating = 99

	got := ScoreItem(cfg, sc, item)

	// treated as 5.0
	if !almostEqual(got.Score, 0.6) {
		t.Fatalf("expected 0.6 for clamped rating, got %v", got.Score)
	}
}

func TestScoreItem_ConcernMatchesAreCappedAtThree(t *testing.T) {
	cfg := DefaultConfig()

	sc := ScoringContext{
		Profile: domain.SkinProfile{
			UserID:   1,
			SkinType: domain.SkinTypeNormal,
			Concerns: datatypes.NewJSONSlice([]string{"acne", "redness", "pore", "dullness", "wrinkle"}),
		},
	}

	item := neutralItem(12)
	item.SuitableConcerns = datatypes.NewJSONSlice([]string{"acne", "redness", "pore", "dullness", "wrinkle"})

	got := ScoreItem(cfg, sc, item)

	// 0.5 + 3*0.10, not 5*0.10
	if !almostEqual(got.Score, 0.8) {
		t.Fatalf("expected 0.8 with capped concern matches, got %v", got.Score)
	}
	if got.Priority != domain.PriorityHigh {
		t.Fatalf("expected high priority, got %s", got.Priority)
	}
}

func TestScoreItem_ConcernOverlapIsBidirectionalSubstring(t *testing.T) {
	cfg := DefaultConfig()

	sc := ScoringContext{
		Profile: domain.SkinProfile{
			UserID:   1,
			SkinType: domain.SkinTypeNormal,
			Concerns: datatypes.NewJSONSlice([]string{"모공 관리"}),
		},
	}

	item := neutralItem(13)
	item.SuitableConcerns = datatypes.NewJSONSlice([]string{"모공"})

	got := ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.6) {
		t.Fatalf("expected stated concern to match shorter target, got %v", got.Score)
	}

	// and the reverse direction
	sc.Profile.Concerns = datatypes.NewJSONSlice([]string{"모공"})
	item.SuitableConcerns = datatypes.NewJSONSlice([]string{"모공 관리"})
	got = ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.6) {
		t.Fatalf("expected shorter stated concern to match longer target, got %v", got.Score)
	}
}

func TestScoreItem_MeasuredNeedUsesLatestSnapshotOnly(t *testing.T) {
	cfg := DefaultConfig()

	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}
	// newest first: hydration fine now, was low before
	sc.History = []domain.MeasurementSnapshot{
		{Hydration: 80, Oiliness: 40, Sensitivity: 20, Elasticity: 70},
		{Hydration: 20, Oiliness: 40, Sensitivity: 20, Elasticity: 70},
	}

	item := neutralItem(14)
	item.Tags = datatypes.NewJSONSlice([]string{"hydrating"})

	got := ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.5) {
		t.Fatalf("older snapshot must not trigger need bonus, got %v", got.Score)
	}
}

func TestScoreItem_ElasticityZeroReadingDoesNotFire(t *testing.T) {
	cfg := DefaultConfig()

	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}
	sc.History = []domain.MeasurementSnapshot{
		{Hydration: 60, Oiliness: 40, Sensitivity: 20, Elasticity: 0},
	}

	item := neutralItem(15)
	item.Tags = datatypes.NewJSONSlice([]string{"firming"})

	got := ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.5) {
		t.Fatalf("elasticity 0 must be treated as unmeasured, got %v", got.Score)
	}
}

func TestScoreItem_PriceTierFit(t *testing.T) {
	cfg := DefaultConfig()

	sc := ScoringContext{Profile: domain.SkinProfile{UserID: 1, SkinType: domain.SkinTypeNormal}}
	sc.Preferences = &domain.UserPreferences{
		UserID: 1,
		PriceTierByCategory: datatypes.JSONMap{
			"toner": "mid",
			"serum": "premium",
		},
	}

	item := neutralItem(16)
	item.Price = 35000 // mid: [20000, 60000)

	got := ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.6) {
		t.Fatalf("expected price tier bonus, got %v", got.Score)
	}

	item.Price = 60000 // upper bound is exclusive
	got = ScoreItem(cfg, sc, item)
	if !almostEqual(got.Score, 0.5) {
		t.Fatalf("price at tier upper bound must not fit, got %v", got.Score)
	}

	serum := neutralItem(17)
	serum.Category = "serum"
	serum.Price = 60000 // premium is unbounded above
	got = ScoreItem(cfg, sc, serum)
	if !almostEqual(got.Score, 0.6) {
		t.Fatalf("expected premium tier fit, got %v", got.Score)
	}
}

func TestScoreItem_Deterministic(t *testing.T) {
	cfg := DefaultConfig()

	sc := oilyContext()
	sc.Preferences = &domain.UserPreferences{
		UserID:             1,
		FavoredIngredients: datatypes.NewJSONSlice([]string{"niacinamide"}),
		PreferredTextures:  datatypes.NewJSONSlice([]string{"gel"}),
	}
	sc.History = []domain.MeasurementSnapshot{
		{Hydration: 40, Oiliness: 80, Sensitivity: 70, Elasticity: 30},
	}

	item := domain.CatalogItem{
		ID:               18,
		Name:             "calming gel",
		Category:         "moisturizer",
		Rating:           4.5,
		Tags:             datatypes.NewJSONSlice([]string{"gel", "soothing", "oil-control"}),
		Ingredients:      datatypes.NewJSONSlice([]string{"niacinamide", "panthenol"}),
		SuitableTypes:    datatypes.NewJSONSlice([]string{"oily", "combination"}),
		SuitableConcerns: datatypes.NewJSONSlice([]string{"pore care"}),
	}

	first := ScoreItem(cfg, sc, item)
	for i := 0; i < 10; i++ {
		again := ScoreItem(cfg, sc, item)
		if again.Score != first.Score || !reflect.DeepEqual(again.Reasons, first.Reasons) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestScoreItem_ScoreAlwaysWithinBounds(t *testing.T) {
	cfg := DefaultConfig()

	contexts := []ScoringContext{
		{Profile: domain.SkinProfile{SkinType: domain.SkinTypeOily, Concerns: datatypes.NewJSONSlice([]string{"acne", "pore", "redness"})}},
		{
			Profile: domain.SkinProfile{SkinType: domain.SkinTypeSensitive},
			Preferences: &domain.UserPreferences{
				AvoidedBrands:      datatypes.NewJSONSlice([]string{"BrandA", "BrandB"}),
				AvoidedIngredients: datatypes.NewJSONSlice([]string{"alcohol"}),
			},
		},
	}

	items := []domain.CatalogItem{
		{ID: 1, Rating: -10, Brand: "BrandA", Ingredients: datatypes.NewJSONSlice([]string{"alcohol"})},
		{ID: 2, Rating: 100, IsPopular: true, IsNew: true,
			SuitableTypes:    datatypes.NewJSONSlice([]string{"oily", "sensitive"}),
			SuitableConcerns: datatypes.NewJSONSlice([]string{"acne", "pore", "redness"})},
		{ID: 3},
	}

	for _, sc := range contexts {
		for _, item := range items {
			got := ScoreItem(cfg, sc, item)
			if got.Score < cfg.MinScore || got.Score > cfg.MaxScore {
				t.Fatalf("score %v out of bounds for item %d", got.Score, item.ID)
			}
		}
	}
}

func TestDedupeReasons(t *testing.T) {
	got := dedupeReasons([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
