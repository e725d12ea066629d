package store

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/model"
)

// PostgresOrderStore implements OrderStore on PostgreSQL.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

const orderColumns = "order_id, cust_id, total_amount, status, created_at"
const orderItemColumns = "item_id, order_id, prod_id, quantity, price"

func scanOrder(row interface{ Scan(dest ...any) error }) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrderItem(row interface{ Scan(dest ...any) error }) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *PostgresOrderStore) CreateOrder(ctx context.Context, custID int64, total decimal.Decimal) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (cust_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING `+orderColumns,
		custID, total, model.OrderPlaced)
	return scanOrder(row)
}

func (s *PostgresOrderStore) GetOrderByID(ctx context.Context, id int64) (*model.Order, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return o, true, nil
}

func (s *PostgresOrderStore) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $1 WHERE order_id = $2
		RETURNING `+orderColumns,
		status, id)
	return scanOrder(row)
}

func (s *PostgresOrderStore) ListOrdersByCustomer(ctx context.Context, custID int64) ([]*model.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE cust_id = $1 ORDER BY order_id`, custID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *PostgresOrderStore) CountOrdersByCustomer(ctx context.Context, custID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE cust_id = $1`, custID).Scan(&count)
	return count, err
}

func (s *PostgresOrderStore) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY order_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *PostgresOrderStore) CreateOrderItem(ctx context.Context, item *model.OrderItem) (*model.OrderItem, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, prod_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orderItemColumns,
		item.OrderID, item.ProductID, item.Quantity, item.Price)
	return scanOrderItem(row)
}

func (s *PostgresOrderStore) ListOrderItems(ctx context.Context, orderID int64) ([]*model.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY item_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrderItems(rows)
}

func (s *PostgresOrderStore) ListAllOrderItems(ctx context.Context) ([]*model.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items ORDER BY item_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrderItems(rows)
}

func collectOrders(rows *sql.Rows) ([]*model.Order, error) {
	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func collectOrderItems(rows *sql.Rows) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
