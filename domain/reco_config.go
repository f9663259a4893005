package domain

// RecoWeights mirrors the tunable part of the scoring engine config as stored
// in the DB. Zero values mean "use the built-in default" for that field.
type RecoWeights struct {
	BaseScore                float64 `json:"base_score"`
	TypeMatchBonus           float64 `json:"type_match_bonus"`
	ConcernMatchBonus        float64 `json:"concern_match_bonus"`
	NeedMatchBonus           float64 `json:"need_match_bonus"`
	PreferredBrandBonus      float64 `json:"preferred_brand_bonus"`
	AvoidedBrandPenalty      float64 `json:"avoided_brand_penalty"`
	PriceTierBonus           float64 `json:"price_tier_bonus"`
	IngredientBonus          float64 `json:"ingredient_bonus"`
	AvoidedIngredientPenalty float64 `json:"avoided_ingredient_penalty"`
	TextureBonus             float64 `json:"texture_bonus"`
	RatingWeight             float64 `json:"rating_weight"`
	PopularBonus             float64 `json:"popular_bonus"`
	NewArrivalBonus          float64 `json:"new_arrival_bonus"`
}

// RecoConfig is a per-scope override row for the scoring engine. Scope is a
// free-form key ("default" for the global config); unknown scopes fall back
// to the built-in defaults.
type RecoConfig struct {
	Scope       string `json:"scope" gorm:"column:scope;primaryKey"`
	ResultLimit int    `json:"result_limit" gorm:"column:result_limit"`

	WeightsRaw []byte      `json:"-" gorm:"column:weights;type:jsonb"`
	Weights    RecoWeights `json:"weights" gorm:"-"`
}

func (RecoConfig) TableName() string {
	return "reco_configs"
}
