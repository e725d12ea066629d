package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/model"
)

// MockProductStore is an in-memory implementation of store.ProductStore for
// testing.
type MockProductStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*model.Product

	// For tracking calls in tests
	CreateCalls []model.Product
	UpdateCalls []ProductUpdateCall
	DeleteCalls []int64

	// Err, when set, is returned by every method.
	Err error
}

// ProductUpdateCall records parameters passed to Update
type ProductUpdateCall struct {
	ID     int64
	Fields store.ProductUpdate
}

func NewMockProductStore() *MockProductStore {
	return &MockProductStore{products: make(map[int64]*model.Product)}
}

// Seed inserts a product directly, assigning an id when unset.
func (m *MockProductStore) Seed(p model.Product) *model.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	} else if p.ID > m.nextID {
		m.nextID = p.ID
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	m.products[p.ID] = &p
	cp := p
	return &cp
}

func (m *MockProductStore) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, *p)
	m.mu.Unlock()
	return m.Seed(*p), nil
}

func (m *MockProductStore) GetByID(ctx context.Context, id int64) (*model.Product, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (m *MockProductStore) GetBySKU(ctx context.Context, sku string) (*model.Product, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.SKU == sku {
			cp := *p
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (m *MockProductStore) Update(ctx context.Context, id int64, fields store.ProductUpdate) (*model.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, ProductUpdateCall{ID: id, Fields: fields})
	p, ok := m.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.SKU != nil {
		p.SKU = *fields.SKU
	}
	if fields.Price != nil {
		p.Price = *fields.Price
	}
	if fields.Stock != nil {
		p.Stock = *fields.Stock
	}
	if fields.Category != nil {
		p.Category = *fields.Category
	}
	cp := *p
	return &cp, nil
}

func (m *MockProductStore) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	delete(m.products, id)
	return nil
}

func (m *MockProductStore) List(ctx context.Context, limit int) ([]*model.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var products []*model.Product
	for id := int64(1); id <= m.nextID && len(products) < limit; id++ {
		if p, ok := m.products[id]; ok {
			cp := *p
			products = append(products, &cp)
		}
	}
	return products, nil
}
