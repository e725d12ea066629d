package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced    = "order.placed"
	EventOrderCancelled = "order.cancelled"
	EventOrderCompleted = "order.completed"
)

type OrderPlaced struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"cust_id"`
	Total      decimal.Decimal `json:"total_amount"`
	Items      []PlacedItem    `json:"items"`
	PlacedAt   time.Time       `json:"placed_at"`
}

type PlacedItem struct {
	ProductID int64           `json:"prod_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderCancelled struct {
	OrderID     int64     `json:"order_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type OrderCompleted struct {
	OrderID     int64     `json:"order_id"`
	CompletedAt time.Time `json:"completed_at"`
}
