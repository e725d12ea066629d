package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderCompleted OrderStatus = "COMPLETED"
)

// validOrderTransitions defines allowed state transitions
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPlaced:    {OrderCancelled, OrderCompleted},
	OrderCancelled: {}, // terminal state
	OrderCompleted: {}, // terminal state
}

// CanTransitionTo checks if the order can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	allowed, exists := validOrderTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod is how a payment was settled. Set only when the payment
// transitions to PAID.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash"
	MethodCard PaymentMethod = "Card"
	MethodUPI  PaymentMethod = "UPI"
)

// ValidMethod reports whether m is one of the supported payment methods.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI:
		return true
	}
	return false
}

type Product struct {
	ID        int64           `json:"prod_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type Customer struct {
	ID        int64     `json:"cust_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID          int64           `json:"order_id"`
	CustomerID  int64           `json:"cust_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderItem snapshots the unit price at order-creation time; later product
// price edits do not affect it.
type OrderItem struct {
	ID        int64           `json:"item_id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"prod_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Payment struct {
	ID        int64           `json:"payment_id"`
	OrderID   int64           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	Method    PaymentMethod   `json:"method,omitempty"`
	TxnRef    string          `json:"txn_ref,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
