package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Priority tiers derived purely from score.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is the persisted output of a recommendation run. One row per
// (user_id, product_id) pair is canonical: recomputes update the existing row
// in place and never touch the engagement flags.
type Recommendation struct {
	ID        string                      `gorm:"column:id;primaryKey" json:"id"` // uuid
	UserID    uint                        `gorm:"column:user_id;not null;uniqueIndex:idx_reco_user_product" json:"user_id"`
	ProductID uint64                      `gorm:"column:product_id;not null;uniqueIndex:idx_reco_user_product" json:"product_id"`
	Score     float64                     `gorm:"column:score;not null" json:"score"`
	Reasons   datatypes.JSONSlice[string] `gorm:"column:reasons;type:jsonb" json:"reasons"`
	Category  string                      `gorm:"column:category;type:text" json:"category"`
	Priority  string                      `gorm:"column:priority;not null" json:"priority"`
	Clicked   bool                        `gorm:"column:clicked;default:false" json:"clicked"`
	Purchased bool                        `gorm:"column:purchased;default:false" json:"purchased"`
	CreatedAt time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// EngagementEvent is the raw audit log behind the Clicked/Purchased flags.
type EngagementEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"column:user_id;not null" json:"user_id"`
	ProductID uint64            `gorm:"column:product_id;not null" json:"product_id"`
	EventType string            `gorm:"column:event_type;not null" json:"event_type"` // click | purchase
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EngagementEvent) TableName() string {
	return "engagement_events"
}
