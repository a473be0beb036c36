package menu

import (
	"context"
	"strconv"
	"strings"

	"github.com/desrlabs/desr-backend/pkg/db/models"
	dbtypes "github.com/desrlabs/desr-backend/pkg/db/types"
	pkgerrors "github.com/desrlabs/desr-backend/pkg/errors"
)

// Default placement transform applied when a catalog row carries no
// model config of its own.
var (
	defaultPosition = dbtypes.Vec3{X: 0, Y: -0.1, Z: -0.8}
	defaultRotation = dbtypes.Vec3{X: 0.5, Y: 0, Z: 0}
	defaultScale    = dbtypes.Vec3{X: 0.2, Y: 0.2, Z: 0.2}
)

const (
	defaultAutoRotate    = true
	defaultRotationSpeed = 0.003
)

// ExportForClient projects the available catalog into the shape the
// rendering SDK bootstraps from: a model map keyed by model key plus
// en/ja translation tables. Japanese text falls back to English when a
// row has no translation. The language argument selects the default the
// SDK starts in and does not narrow the payload.
func (s *service) ExportForClient(ctx context.Context, language string) (*ClientExport, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export menu catalog")
	}

	export := &ClientExport{
		Models: make(map[string]ModelExport, len(items)),
		Translations: map[string]map[string]string{
			"en": make(map[string]string, len(items)*2),
			"ja": make(map[string]string, len(items)*2),
		},
	}

	for i := range items {
		item := &items[i]
		nameKey := item.ModelKey + "Name"
		descriptionKey := item.ModelKey + "Description"

		export.Models[item.ModelKey] = ModelExport{
			Path:           item.ModelPath,
			Position:       transformOrDefault(item, func(c *dbtypes.ModelConfig) *dbtypes.Vec3 { return c.Position }, defaultPosition),
			Rotation:       transformOrDefault(item, func(c *dbtypes.ModelConfig) *dbtypes.Vec3 { return c.Rotation }, defaultRotation),
			Scale:          transformOrDefault(item, func(c *dbtypes.ModelConfig) *dbtypes.Vec3 { return c.Scale }, defaultScale),
			AutoRotate:     defaultAutoRotate,
			RotationSpeed:  defaultRotationSpeed,
			NameKey:        nameKey,
			DescriptionKey: descriptionKey,
			Price:          formatPrice(s.currencySymbol, item.Price),
		}

		descriptionEN := deref(item.DescriptionEN)
		export.Translations["en"][nameKey] = item.NameEN
		export.Translations["en"][descriptionKey] = descriptionEN
		export.Translations["ja"][nameKey] = fallback(item.NameJA, item.NameEN)
		export.Translations["ja"][descriptionKey] = fallback(item.DescriptionJA, descriptionEN)
	}

	return export, nil
}

func transformOrDefault(item *models.MenuItem, pick func(*dbtypes.ModelConfig) *dbtypes.Vec3, def dbtypes.Vec3) dbtypes.Vec3 {
	if item.ModelConfig == nil {
		return def
	}
	if v := pick(item.ModelConfig); v != nil {
		return *v
	}
	return def
}

func fallback(preferred *string, alternative string) string {
	if preferred != nil && *preferred != "" {
		return *preferred
	}
	return alternative
}

// formatPrice renders a numeric price as a display string with thousand
// separators, e.g. 1000 -> "¥1,000". Fractional prices keep two digits.
func formatPrice(symbol string, price float64) string {
	negative := price < 0
	if negative {
		price = -price
	}

	whole := int64(price)
	digits := strconv.FormatInt(whole, 10)

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(symbol)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if frac := price - float64(whole); frac > 1e-9 {
		cents := strconv.FormatFloat(frac, 'f', 2, 64)
		b.WriteString(strings.TrimPrefix(cents, "0"))
	}
	return b.String()
}
