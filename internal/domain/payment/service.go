package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/infrastructure/kafka"
	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/model"
)

var (
	ErrPaymentNotFound  = errors.New("payment record not found")
	ErrAlreadyProcessed = errors.New("payment already processed")
)

// OrderCompleter is the slice of the order service a successful payment
// needs: marking the paid order completed.
type OrderCompleter interface {
	Complete(ctx context.Context, orderID int64) (*model.Order, error)
}

// Service manages payment rows and their status transitions. A pending row
// is never created implicitly; callers create it explicitly after placing
// the order.
type Service struct {
	store    store.PaymentStore
	orders   OrderCompleter
	producer *kafka.Producer
}

func NewService(store store.PaymentStore, orders OrderCompleter, producer *kafka.Producer) *Service {
	return &Service{store: store, orders: orders, producer: producer}
}

// CreatePending inserts a PENDING payment row for the order.
func (s *Service) CreatePending(ctx context.Context, orderID int64, amount decimal.Decimal) (*model.Payment, error) {
	return s.store.CreatePending(ctx, orderID, amount)
}

// Process marks a PENDING payment PAID with the given method and a fresh
// transaction reference, then completes the order. The two writes are
// independent: a completion failure leaves the payment PAID.
func (s *Service) Process(ctx context.Context, orderID int64, method model.PaymentMethod) (*model.Payment, error) {
	p, found, err := s.store.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: order %d", ErrPaymentNotFound, orderID)
	}
	if p.Status != model.PaymentPending {
		return nil, fmt.Errorf("%w: status is %s", ErrAlreadyProcessed, p.Status)
	}

	txnRef := uuid.New().String()
	updated, err := s.store.UpdateStatus(ctx, orderID, model.PaymentPaid, method, txnRef)
	if err != nil {
		return nil, err
	}

	if _, err := s.orders.Complete(ctx, orderID); err != nil {
		return nil, err
	}

	s.publish(ctx, EventPaymentPaid, orderID, PaymentPaid{
		OrderID: orderID,
		Amount:  updated.Amount,
		Method:  method,
		TxnRef:  txnRef,
		PaidAt:  time.Now(),
	})
	return updated, nil
}

// Refund marks the payment REFUNDED regardless of its current status. Both
// PENDING and PAID rows refund unconditionally.
func (s *Service) Refund(ctx context.Context, orderID int64) (*model.Payment, error) {
	_, found, err := s.store.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: order %d", ErrPaymentNotFound, orderID)
	}

	updated, err := s.store.UpdateStatus(ctx, orderID, model.PaymentRefunded, "", "")
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventPaymentRefunded, orderID, PaymentRefunded{
		OrderID:    orderID,
		Amount:     updated.Amount,
		RefundedAt: time.Now(),
	})
	return updated, nil
}

// ListByStatus returns payments in the given status.
func (s *Service) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error) {
	return s.store.ListByStatus(ctx, status)
}

func (s *Service) publish(ctx context.Context, eventType string, orderID int64, payload any) {
	if err := s.producer.Publish(ctx, eventType, strconv.FormatInt(orderID, 10), payload); err != nil {
		log.Printf("[Payment] Failed to publish %s for order %d: %v", eventType, orderID, err)
	}
}
