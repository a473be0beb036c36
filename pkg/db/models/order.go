package models

import (
	"time"

	dbtypes "github.com/desrlabs/desr-backend/pkg/db/types"
	"github.com/desrlabs/desr-backend/pkg/enums"
)

// Order stores a snapshot of the ordered line items rather than catalog
// foreign keys, so menu edits never corrupt order history. TotalAmount is
// computed once at creation and never recomputed on read.
type Order struct {
	ID          string            `gorm:"column:id;primaryKey" json:"id"`
	TableNumber int               `gorm:"column:table_number;not null;index" json:"tableNumber"`
	SessionID   *string           `gorm:"column:session_id;index" json:"sessionId"`
	Items       dbtypes.OrderItems `gorm:"column:items;type:text;not null" json:"items"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:pending;index" json:"status"`
	TotalAmount float64           `gorm:"column:total_amount" json:"totalAmount"`
	Notes       *string           `gorm:"column:notes" json:"notes"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}
