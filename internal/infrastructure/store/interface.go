package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/model"
)

// ProductUpdate carries the fields of a partial product update. Nil fields
// are left untouched.
type ProductUpdate struct {
	Name     *string
	SKU      *string
	Price    *decimal.Decimal
	Stock    *int
	Category *string
}

// CustomerUpdate carries the fields of a partial customer update.
type CustomerUpdate struct {
	Phone *string
	City  *string
}

// ProductStore defines row-level access to the products table.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, bool, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, bool, error)
	Update(ctx context.Context, id int64, fields ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit int) ([]*model.Product, error)
}

// CustomerStore defines row-level access to the customers table.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, bool, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, bool, error)
	Update(ctx context.Context, id int64, fields CustomerUpdate) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit int) ([]*model.Customer, error)
	Search(ctx context.Context, email, city string) ([]*model.Customer, error)
}

// OrderStore defines row-level access to the orders and order_items tables.
type OrderStore interface {
	CreateOrder(ctx context.Context, custID int64, total decimal.Decimal) (*model.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*model.Order, bool, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	ListOrdersByCustomer(ctx context.Context, custID int64) ([]*model.Order, error)
	CountOrdersByCustomer(ctx context.Context, custID int64) (int, error)
	ListAllOrders(ctx context.Context) ([]*model.Order, error)

	CreateOrderItem(ctx context.Context, item *model.OrderItem) (*model.OrderItem, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]*model.OrderItem, error)
	ListAllOrderItems(ctx context.Context) ([]*model.OrderItem, error)
}

// PaymentStore defines row-level access to the payments table. A payment is
// keyed by its order: one row per order at most.
type PaymentStore interface {
	CreatePending(ctx context.Context, orderID int64, amount decimal.Decimal) (*model.Payment, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Payment, bool, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.PaymentStatus, method model.PaymentMethod, txnRef string) (*model.Payment, error)
	ListByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error)
}
