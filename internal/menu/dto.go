package menu

import (
	dbtypes "github.com/desrlabs/desr-backend/pkg/db/types"
)

// LocalizedText pairs the English text with its optional Japanese
// translation.
type LocalizedText struct {
	EN string  `json:"en"`
	JA *string `json:"ja"`
}

// ItemView is the public projection of a catalog row. Name and
// description are grouped per language; the price stays numeric.
type ItemView struct {
	ID          string               `json:"id"`
	ModelKey    string               `json:"modelKey"`
	Name        LocalizedText        `json:"name"`
	Description LocalizedText        `json:"description"`
	Price       float64              `json:"price"`
	ModelPath   *string              `json:"modelPath"`
	ModelConfig *dbtypes.ModelConfig `json:"modelConfig"`
	Category    *string              `json:"category"`
	Available   bool                 `json:"available"`
	SortOrder   int                  `json:"sortOrder"`
}

// CreateItemInput carries a new catalog entry.
type CreateItemInput struct {
	ModelKey      string               `json:"modelKey" validate:"required"`
	NameEN        string               `json:"nameEn" validate:"required"`
	NameJA        *string              `json:"nameJa"`
	DescriptionEN *string              `json:"descriptionEn"`
	DescriptionJA *string              `json:"descriptionJa"`
	Price         float64              `json:"price" validate:"gte=0"`
	ModelPath     *string              `json:"modelPath"`
	ModelConfig   *dbtypes.ModelConfig `json:"modelConfig"`
	Category      *string              `json:"category"`
	Available     *bool                `json:"available"`
	SortOrder     int                  `json:"sortOrder"`
}

// UpdateItemInput is a partial update; nil fields are left untouched.
type UpdateItemInput struct {
	NameEN        *string              `json:"nameEn"`
	NameJA        *string              `json:"nameJa"`
	DescriptionEN *string              `json:"descriptionEn"`
	DescriptionJA *string              `json:"descriptionJa"`
	Price         *float64             `json:"price" validate:"omitempty,gte=0"`
	ModelPath     *string              `json:"modelPath"`
	ModelConfig   *dbtypes.ModelConfig `json:"modelConfig"`
	Category      *string              `json:"category"`
	Available     *bool                `json:"available"`
	SortOrder     *int                 `json:"sortOrder"`
}

// ModelExport is one entry of the client SDK model map.
type ModelExport struct {
	Path           *string      `json:"path"`
	Position       dbtypes.Vec3 `json:"position"`
	Rotation       dbtypes.Vec3 `json:"rotation"`
	Scale          dbtypes.Vec3 `json:"scale"`
	AutoRotate     bool         `json:"autoRotate"`
	RotationSpeed  float64      `json:"rotationSpeed"`
	NameKey        string       `json:"nameKey"`
	DescriptionKey string       `json:"descriptionKey"`
	Price          string       `json:"price"`
}

// ClientExport is the payload the rendering SDK bootstraps from: the
// model map keyed by model key plus per-language translation tables.
type ClientExport struct {
	Models       map[string]ModelExport       `json:"models"`
	Translations map[string]map[string]string `json:"translations"`
}
