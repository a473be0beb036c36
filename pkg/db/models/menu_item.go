package models

import (
	"time"

	dbtypes "github.com/desrlabs/desr-backend/pkg/db/types"
)

// MenuItem is the canonical catalog record. The numeric price column is
// the only source of truth for pricing; localized currency strings are
// derived at export time.
type MenuItem struct {
	ID            string               `gorm:"column:id;primaryKey"`
	ModelKey      string               `gorm:"column:model_key;uniqueIndex;not null"`
	NameEN        string               `gorm:"column:name_en;not null"`
	NameJA        *string              `gorm:"column:name_ja"`
	DescriptionEN *string              `gorm:"column:description_en"`
	DescriptionJA *string              `gorm:"column:description_ja"`
	Price         float64              `gorm:"column:price;not null"`
	ModelPath     *string              `gorm:"column:model_path"`
	ModelConfig   *dbtypes.ModelConfig `gorm:"column:model_config;type:text"`
	Category      *string              `gorm:"column:category"`
	Available     bool                 `gorm:"column:available;not null;default:true"`
	SortOrder     int                  `gorm:"column:sort_order;not null;default:0"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
