package domain

import (
	"time"
)

// MeasurementSnapshot is one timestamped set of skin readings, each 0-100.
type MeasurementSnapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Hydration   float64   `gorm:"column:hydration;type:numeric" json:"hydration"`
	Oiliness    float64   `gorm:"column:oiliness;type:numeric" json:"oiliness"`
	Sensitivity float64   `gorm:"column:sensitivity;type:numeric" json:"sensitivity"`
	Elasticity  float64   `gorm:"column:elasticity;type:numeric" json:"elasticity"`
	MeasuredAt  time.Time `gorm:"column:measured_at;not null" json:"measured_at"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MeasurementSnapshot) TableName() string {
	return "measurement_snapshots"
}

// OverallScore condenses one snapshot into a single 0-100 skin score used for
// the profile's running aggregates. Hydration and elasticity count as-is;
// oiliness and sensitivity count inverted (less is better).
func (m MeasurementSnapshot) OverallScore() float64 {
	return (m.Hydration + m.Elasticity + (100 - m.Oiliness) + (100 - m.Sensitivity)) / 4
}
