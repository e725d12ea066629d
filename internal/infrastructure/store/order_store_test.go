package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/retail-cli/internal/model"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"order_id", "cust_id", "total_amount", "status", "created_at"})
}

func orderItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"item_id", "order_id", "prod_id", "quantity", "price"})
}

func TestPostgresOrderStore_CreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresOrderStore(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(int64(1), sqlmock.AnyArg(), "PLACED").
		WillReturnRows(orderRows().AddRow(7, 1, "20.00", "PLACED", time.Now()))

	o, err := s.CreateOrder(ctx, 1, decimal.RequireFromString("20"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), o.ID)
	assert.Equal(t, model.OrderPlaced, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("20")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderStore_GetOrderByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresOrderStore(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE order_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(orderRows())

	o, found, err := s.GetOrderByID(ctx, 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, o)
}

func TestPostgresOrderStore_UpdateOrderStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresOrderStore(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE orders SET status = $1 WHERE order_id = $2")).
		WithArgs("CANCELLED", int64(7)).
		WillReturnRows(orderRows().AddRow(7, 1, "20.00", "CANCELLED", time.Now()))

	o, err := s.UpdateOrderStatus(ctx, 7, model.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, o.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderStore_CountOrdersByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresOrderStore(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM orders WHERE cust_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.CountOrdersByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPostgresOrderStore_CreateOrderItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresOrderStore(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(7), int64(1), 2, sqlmock.AnyArg()).
		WillReturnRows(orderItemRows().AddRow(11, 7, 1, 2, "10.00"))

	item, err := s.CreateOrderItem(ctx, &model.OrderItem{
		OrderID:   7,
		ProductID: 1,
		Quantity:  2,
		Price:     decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), item.ID)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("10")))
}

func TestPostgresOrderStore_ListOrderItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresOrderStore(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id = $1 ORDER BY item_id")).
		WithArgs(int64(7)).
		WillReturnRows(orderItemRows().
			AddRow(11, 7, 1, 2, "10.00").
			AddRow(12, 7, 2, 1, "3.25"))

	items, err := s.ListOrderItems(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[1].ProductID)
}
