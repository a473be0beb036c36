package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Vec3 is a 3D vector used for model placement transforms.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ModelConfig is the placement transform applied when the client renders
// a menu item's 3D asset over the camera feed.
type ModelConfig struct {
	Position *Vec3 `json:"position,omitempty"`
	Rotation *Vec3 `json:"rotation,omitempty"`
	Scale    *Vec3 `json:"scale,omitempty"`
}

func (c *ModelConfig) Scan(src any) error {
	if src == nil {
		*c = ModelConfig{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("ModelConfig: unsupported Scan type %T", src)
	}

	if len(raw) == 0 {
		*c = ModelConfig{}
		return nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("ModelConfig: parse: %w", err)
	}
	return nil
}

func (c ModelConfig) Value() (driver.Value, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("ModelConfig: marshal: %w", err)
	}
	return string(raw), nil
}
