package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/model"
)

// MockPaymentStore is an in-memory implementation of store.PaymentStore for
// testing. Payments are keyed by order id.
type MockPaymentStore struct {
	mu       sync.Mutex
	nextID   int64
	payments map[int64]*model.Payment

	// For tracking calls in tests
	UpdateCalls []PaymentUpdateCall
}

// PaymentUpdateCall records parameters passed to UpdateStatus
type PaymentUpdateCall struct {
	OrderID int64
	Status  model.PaymentStatus
	Method  model.PaymentMethod
	TxnRef  string
}

func NewMockPaymentStore() *MockPaymentStore {
	return &MockPaymentStore{payments: make(map[int64]*model.Payment)}
}

// Seed inserts a payment directly.
func (m *MockPaymentStore) Seed(p model.Payment) *model.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	m.payments[p.OrderID] = &p
	cp := p
	return &cp
}

func (m *MockPaymentStore) CreatePending(ctx context.Context, orderID int64, amount decimal.Decimal) (*model.Payment, error) {
	return m.Seed(model.Payment{OrderID: orderID, Amount: amount, Status: model.PaymentPending}), nil
}

func (m *MockPaymentStore) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[orderID]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (m *MockPaymentStore) UpdateStatus(ctx context.Context, orderID int64, status model.PaymentStatus, method model.PaymentMethod, txnRef string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, PaymentUpdateCall{OrderID: orderID, Status: status, Method: method, TxnRef: txnRef})
	p, ok := m.payments[orderID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	p.Status = status
	if method != "" {
		p.Method = method
	}
	if txnRef != "" {
		p.TxnRef = txnRef
	}
	cp := *p
	return &cp, nil
}

func (m *MockPaymentStore) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var payments []*model.Payment
	for _, p := range m.payments {
		if p.Status == status {
			cp := *p
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}
