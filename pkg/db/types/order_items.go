package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderItem is the immutable snapshot of one ordered line: name and unit
// price are captured at creation time, not referenced from the catalog.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderItems serializes line items into a single JSON text column, the
// same layout the orders table has always used.
type OrderItems []OrderItem

func (items *OrderItems) Scan(src any) error {
	if src == nil {
		*items = OrderItems{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return items.parseFromBytes([]byte(v))
	case []byte:
		return items.parseFromBytes(v)
	default:
		return fmt.Errorf("OrderItems: unsupported Scan type %T", src)
	}
}

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("OrderItems: marshal: %w", err)
	}
	return string(raw), nil
}

func (items *OrderItems) parseFromBytes(raw []byte) error {
	if len(raw) == 0 {
		*items = OrderItems{}
		return nil
	}
	var out []OrderItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("OrderItems: parse: %w", err)
	}
	*items = OrderItems(out)
	return nil
}
