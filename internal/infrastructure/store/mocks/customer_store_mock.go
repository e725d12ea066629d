package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/model"
)

// MockCustomerStore is an in-memory implementation of store.CustomerStore
// for testing.
type MockCustomerStore struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]*model.Customer

	DeleteCalls []int64

	// Err, when set, is returned by every method.
	Err error
}

func NewMockCustomerStore() *MockCustomerStore {
	return &MockCustomerStore{customers: make(map[int64]*model.Customer)}
}

// Seed inserts a customer directly, assigning an id when unset.
func (m *MockCustomerStore) Seed(c model.Customer) *model.Customer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	} else if c.ID > m.nextID {
		m.nextID = c.ID
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	m.customers[c.ID] = &c
	cp := c
	return &cp
}

func (m *MockCustomerStore) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Seed(*c), nil
}

func (m *MockCustomerStore) GetByID(ctx context.Context, id int64) (*model.Customer, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, false, nil
	}
	cp := *c
	return &cp, true, nil
}

func (m *MockCustomerStore) GetByEmail(ctx context.Context, email string) (*model.Customer, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email {
			cp := *c
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (m *MockCustomerStore) Update(ctx context.Context, id int64, fields store.CustomerUpdate) (*model.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if fields.Phone != nil {
		c.Phone = *fields.Phone
	}
	if fields.City != nil {
		c.City = *fields.City
	}
	cp := *c
	return &cp, nil
}

func (m *MockCustomerStore) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	delete(m.customers, id)
	return nil
}

func (m *MockCustomerStore) List(ctx context.Context, limit int) ([]*model.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var customers []*model.Customer
	for id := int64(1); id <= m.nextID && len(customers) < limit; id++ {
		if c, ok := m.customers[id]; ok {
			cp := *c
			customers = append(customers, &cp)
		}
	}
	return customers, nil
}

func (m *MockCustomerStore) Search(ctx context.Context, email, city string) ([]*model.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var customers []*model.Customer
	for id := int64(1); id <= m.nextID; id++ {
		c, ok := m.customers[id]
		if !ok {
			continue
		}
		if email != "" && c.Email != email {
			continue
		}
		if city != "" && c.City != city {
			continue
		}
		cp := *c
		customers = append(customers, &cp)
	}
	return customers, nil
}
