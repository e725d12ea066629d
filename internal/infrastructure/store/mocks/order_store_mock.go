package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/model"
)

// MockOrderStore is an in-memory implementation of store.OrderStore for
// testing.
type MockOrderStore struct {
	mu         sync.Mutex
	nextID     int64
	nextItemID int64
	orders     map[int64]*model.Order
	items      map[int64][]*model.OrderItem // keyed by order id

	// For tracking calls in tests
	StatusCalls []StatusCall

	// CreateOrderErr, when set, fails CreateOrder only (partial-failure
	// scenarios leave earlier writes in place).
	CreateOrderErr error
	// CreateItemErr fails CreateOrderItem after ItemErrAfter successful
	// inserts.
	CreateItemErr error
	ItemErrAfter  int

	itemInserts int
}

// StatusCall records parameters passed to UpdateOrderStatus
type StatusCall struct {
	OrderID int64
	Status  model.OrderStatus
}

func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		orders: make(map[int64]*model.Order),
		items:  make(map[int64][]*model.OrderItem),
	}
}

// SeedOrder inserts an order directly, assigning an id when unset.
func (m *MockOrderStore) SeedOrder(o model.Order) *model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == 0 {
		m.nextID++
		o.ID = m.nextID
	} else if o.ID > m.nextID {
		m.nextID = o.ID
	}
	if o.Status == "" {
		o.Status = model.OrderPlaced
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	m.orders[o.ID] = &o
	cp := o
	return &cp
}

// SeedItem inserts an order item directly.
func (m *MockOrderStore) SeedItem(item model.OrderItem) *model.OrderItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextItemID++
	item.ID = m.nextItemID
	m.items[item.OrderID] = append(m.items[item.OrderID], &item)
	cp := item
	return &cp
}

func (m *MockOrderStore) CreateOrder(ctx context.Context, custID int64, total decimal.Decimal) (*model.Order, error) {
	if m.CreateOrderErr != nil {
		return nil, m.CreateOrderErr
	}
	return m.SeedOrder(model.Order{CustomerID: custID, TotalAmount: total, Status: model.OrderPlaced}), nil
}

func (m *MockOrderStore) GetOrderByID(ctx context.Context, id int64) (*model.Order, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, false, nil
	}
	cp := *o
	return &cp, true, nil
}

func (m *MockOrderStore) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls = append(m.StatusCalls, StatusCall{OrderID: id, Status: status})
	o, ok := m.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (m *MockOrderStore) ListOrdersByCustomer(ctx context.Context, custID int64) ([]*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []*model.Order
	for id := int64(1); id <= m.nextID; id++ {
		if o, ok := m.orders[id]; ok && o.CustomerID == custID {
			cp := *o
			orders = append(orders, &cp)
		}
	}
	return orders, nil
}

func (m *MockOrderStore) CountOrdersByCustomer(ctx context.Context, custID int64) (int, error) {
	orders, _ := m.ListOrdersByCustomer(ctx, custID)
	return len(orders), nil
}

func (m *MockOrderStore) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []*model.Order
	for id := int64(1); id <= m.nextID; id++ {
		if o, ok := m.orders[id]; ok {
			cp := *o
			orders = append(orders, &cp)
		}
	}
	return orders, nil
}

func (m *MockOrderStore) CreateOrderItem(ctx context.Context, item *model.OrderItem) (*model.OrderItem, error) {
	m.mu.Lock()
	if m.CreateItemErr != nil && m.itemInserts >= m.ItemErrAfter {
		m.mu.Unlock()
		return nil, m.CreateItemErr
	}
	m.itemInserts++
	m.mu.Unlock()
	return m.SeedItem(*item), nil
}

func (m *MockOrderStore) ListOrderItems(ctx context.Context, orderID int64) ([]*model.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*model.OrderItem
	for _, item := range m.items[orderID] {
		cp := *item
		items = append(items, &cp)
	}
	return items, nil
}

func (m *MockOrderStore) ListAllOrderItems(ctx context.Context) ([]*model.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*model.OrderItem
	for id := int64(1); id <= m.nextID; id++ {
		for _, item := range m.items[id] {
			cp := *item
			items = append(items, &cp)
		}
	}
	return items, nil
}
