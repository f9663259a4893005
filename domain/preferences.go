package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Price tier names usable in PriceTierByCategory values.
const (
	PriceTierBudget  = "budget"
	PriceTierMid     = "mid"
	PriceTierPremium = "premium"
)

// UserPreferences is entirely optional: the recommendation engine must run
// with no row present for a user.
type UserPreferences struct {
	UserID              uint                        `gorm:"column:user_id;primaryKey" json:"user_id"`
	PreferredBrands     datatypes.JSONSlice[string] `gorm:"column:preferred_brands;type:jsonb" json:"preferred_brands"`
	AvoidedBrands       datatypes.JSONSlice[string] `gorm:"column:avoided_brands;type:jsonb" json:"avoided_brands"`
	FavoredIngredients  datatypes.JSONSlice[string] `gorm:"column:favored_ingredients;type:jsonb" json:"favored_ingredients"`
	AvoidedIngredients  datatypes.JSONSlice[string] `gorm:"column:avoided_ingredients;type:jsonb" json:"avoided_ingredients"`
	PreferredTextures   datatypes.JSONSlice[string] `gorm:"column:preferred_textures;type:jsonb" json:"preferred_textures"`
	PriceTierByCategory datatypes.JSONMap           `gorm:"column:price_tier_by_category;type:jsonb" json:"price_tier_by_category"`
	Boldness            int                         `gorm:"column:boldness;default:3" json:"boldness"` // 1 (safe picks) .. 5 (adventurous)
	CreatedAt           time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

// PriceTierFor returns the preferred tier name for a category, or "" when the
// user stated none. The jsonb map may hold arbitrary values from old clients;
// anything that is not a string is treated as absent.
func (p *UserPreferences) PriceTierFor(category string) string {
	if p == nil || p.PriceTierByCategory == nil {
		return ""
	}
	v, ok := p.PriceTierByCategory[category]
	if !ok {
		return ""
	}
	tier, ok := v.(string)
	if !ok {
		return ""
	}
	return tier
}
