package models

import (
	"time"

	"github.com/desrlabs/desr-backend/pkg/enums"
)

// Table tracks per-table occupancy. A table holds at most one active
// session id at a time; a concurrent session start overwrites it.
type Table struct {
	Number           int               `gorm:"column:number;primaryKey" json:"number"`
	CurrentSessionID *string           `gorm:"column:current_session_id" json:"currentSessionId"`
	Status           enums.TableStatus `gorm:"column:status;not null;default:available" json:"status"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Table) TableName() string {
	return "tables"
}
