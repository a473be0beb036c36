package orders

import (
	"encoding/json"
	"regexp"

	dbtypes "github.com/desrlabs/desr-backend/pkg/db/types"
	"github.com/shopspring/decimal"
)

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]+`)

// coercePrice turns a client-supplied price into a decimal. Currency
// symbols and separators are stripped before parsing; anything still
// unparseable contributes zero to the total instead of failing the order.
func coercePrice(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
		return decimal.Zero
	case string:
		stripped := nonNumericRe.ReplaceAllString(v, "")
		if stripped == "" {
			return decimal.Zero
		}
		if d, err := decimal.NewFromString(stripped); err == nil {
			return d
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// snapshotItems freezes the requested lines into the stored form and
// computes the order total as sum(price x max(quantity, 1)).
func snapshotItems(items []LineItemInput) (dbtypes.OrderItems, float64) {
	snapshot := make(dbtypes.OrderItems, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		price := coercePrice(item.Price)
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		snapshot = append(snapshot, dbtypes.OrderItem{
			Name:     item.Name,
			Price:    price.InexactFloat64(),
			Quantity: qty,
		})
	}

	return snapshot, total.InexactFloat64()
}
