package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.catalog_items (
//     id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name              TEXT NOT NULL,
//     brand             TEXT,
//     category          TEXT NOT NULL,
//     subcategory       TEXT,
//     price             NUMERIC,
//     rating            NUMERIC,
//     is_popular        BOOLEAN,
//     is_new            BOOLEAN,
//     tags              JSONB,
//     ingredients       JSONB,
//     suitable_types    JSONB,
//     suitable_concerns JSONB,
//     created_at        TIMESTAMPTZ DEFAULT NOW()
// );

type CatalogItem struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"column:name;type:text;not null" json:"name"`
	Brand       string  `gorm:"column:brand;type:text" json:"brand"`
	Category    string  `gorm:"column:category;type:text;not null" json:"category"`
	Subcategory string  `gorm:"column:subcategory;type:text" json:"subcategory"`
	Price       float64 `gorm:"column:price;type:numeric" json:"price"`
	Rating      float64 `gorm:"column:rating;type:numeric" json:"rating"` // 0-5
	IsPopular   bool    `gorm:"column:is_popular;default:false" json:"is_popular"`
	IsNew       bool    `gorm:"column:is_new;default:false" json:"is_new"`

	// Remedy tags (hydrating, oil-control, soothing, firming, ...) plus
	// texture tags (gel, cream, foam, ...).
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb" json:"tags"`
	Ingredients datatypes.JSONSlice[string] `gorm:"column:ingredients;type:jsonb" json:"ingredients"`

	// Suitability descriptor: which skin types and concerns the item targets.
	SuitableTypes    datatypes.JSONSlice[string] `gorm:"column:suitable_types;type:jsonb" json:"suitable_types"`
	SuitableConcerns datatypes.JSONSlice[string] `gorm:"column:suitable_concerns;type:jsonb" json:"suitable_concerns"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}
