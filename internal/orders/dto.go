package orders

import (
	"github.com/desrlabs/desr-backend/pkg/enums"
)

// LineItemInput is one requested line. Price arrives from the browser SDK
// either as a number or as a display string ("¥1,000"); coercion to a
// numeric value happens once, at order creation.
type LineItemInput struct {
	Name     string `json:"name"`
	Price    any    `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateOrderInput carries everything needed to open an order.
type CreateOrderInput struct {
	TableNumber int
	Items       []LineItemInput
	SessionID   *string
	Notes       *string
}

// ListFilters narrows order queries. Zero values mean "no filter".
type ListFilters struct {
	TableNumber *int
	Status      *enums.OrderStatus
	SessionID   *string
	Limit       int
}

// Statistics summarizes the current calendar day in server local time.
type Statistics struct {
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	PreparingOrders int64   `json:"preparingOrders"`
	CompletedOrders int64   `json:"completedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}
