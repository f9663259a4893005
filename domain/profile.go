package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Valid skin types. Anything else is rejected at the service layer.
const (
	SkinTypeOily        = "oily"
	SkinTypeDry         = "dry"
	SkinTypeCombination = "combination"
	SkinTypeSensitive   = "sensitive"
	SkinTypeNormal      = "normal"
)

type SkinProfile struct {
	UserID           uint                        `gorm:"column:user_id;primaryKey" json:"user_id"`
	SkinType         string                      `gorm:"column:skin_type;not null" json:"skin_type"`
	Concerns         datatypes.JSONSlice[string] `gorm:"column:concerns;type:jsonb" json:"concerns"`
	AvgSkinScore     float64                     `gorm:"column:avg_skin_score;default:0" json:"avg_skin_score"`
	TotalEvaluations int                         `gorm:"column:total_evaluations;default:0" json:"total_evaluations"`
	CreatedAt        time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SkinProfile) TableName() string {
	return "skin_profiles"
}
