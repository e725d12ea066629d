package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/domain/customer"
	"github.com/example/retail-cli/internal/domain/product"
	"github.com/example/retail-cli/internal/infrastructure/kafka"
	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/model"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// ItemRequest is one order line as requested by the caller: a product and a
// quantity. The unit price is snapshotted at creation time, not taken from
// the caller.
type ItemRequest struct {
	ProductID int64
	Quantity  int
}

// Details is a fully resolved order: the row itself, its owning customer and
// its item snapshots.
type Details struct {
	Order    *model.Order       `json:"order"`
	Customer *model.Customer    `json:"customer"`
	Items    []*model.OrderItem `json:"items"`
}

// Service orchestrates the order lifecycle across the customer and product
// services and the order store. Every multi-step mutation here issues
// independent store calls with no transaction around them; a failure partway
// through leaves earlier writes in place.
type Service struct {
	store     store.OrderStore
	customers *customer.Service
	products  *product.Service
	producer  *kafka.Producer
}

func NewService(store store.OrderStore, customers *customer.Service, products *product.Service, producer *kafka.Producer) *Service {
	return &Service{
		store:     store,
		customers: customers,
		products:  products,
		producer:  producer,
	}
}

// Create places a new order. All items are validated against current stock
// before any row is written; stock is deducted and item snapshots are
// inserted only after the full validation pass.
func (s *Service) Create(ctx context.Context, custID int64, items []ItemRequest) (*Details, error) {
	if _, err := s.customers.GetByID(ctx, custID); err != nil {
		return nil, err
	}

	// Validate stock for every item and compute the total at current prices.
	total := decimal.Zero
	for _, item := range items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: not enough stock for %s (available: %d)",
				product.ErrInsufficientStock, p.Name, p.Stock)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	o, err := s.store.CreateOrder(ctx, custID, total)
	if err != nil {
		return nil, err
	}

	// Deduct stock and snapshot each item at its current price.
	placedItems := make([]PlacedItem, 0, len(items))
	for _, item := range items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if _, err := s.products.AdjustStock(ctx, p.ID, -item.Quantity); err != nil {
			return nil, err
		}
		if _, err := s.store.CreateOrderItem(ctx, &model.OrderItem{
			OrderID:   o.ID,
			ProductID: p.ID,
			Quantity:  item.Quantity,
			Price:     p.Price,
		}); err != nil {
			return nil, err
		}
		placedItems = append(placedItems, PlacedItem{ProductID: p.ID, Quantity: item.Quantity, Price: p.Price})
	}

	s.publish(ctx, EventOrderPlaced, o.ID, OrderPlaced{
		OrderID:    o.ID,
		CustomerID: custID,
		Total:      total,
		Items:      placedItems,
		PlacedAt:   o.CreatedAt,
	})

	return s.GetDetails(ctx, o.ID)
}

// GetDetails resolves an order together with its customer and item
// snapshots.
func (s *Service) GetDetails(ctx context.Context, orderID int64) (*Details, error) {
	o, found, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	c, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &Details{Order: o, Customer: c, Items: items}, nil
}

// Cancel transitions a PLACED order to CANCELLED and restores the stock of
// every item.
func (s *Service) Cancel(ctx context.Context, orderID int64) (*model.Order, error) {
	o, err := s.requireTransition(ctx, orderID, model.OrderCancelled)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, err := s.products.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateOrderStatus(ctx, o.ID, model.OrderCancelled)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventOrderCancelled, o.ID, OrderCancelled{OrderID: o.ID, CancelledAt: time.Now()})
	return updated, nil
}

// Complete transitions a PLACED order to COMPLETED. Stock is unaffected.
func (s *Service) Complete(ctx context.Context, orderID int64) (*model.Order, error) {
	o, err := s.requireTransition(ctx, orderID, model.OrderCompleted)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateOrderStatus(ctx, o.ID, model.OrderCompleted)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventOrderCompleted, o.ID, OrderCompleted{OrderID: o.ID, CompletedAt: time.Now()})
	return updated, nil
}

// ListByCustomer returns the customer's orders, empty when there are none.
// The customer's existence is not checked.
func (s *Service) ListByCustomer(ctx context.Context, custID int64) ([]*model.Order, error) {
	return s.store.ListOrdersByCustomer(ctx, custID)
}

func (s *Service) requireTransition(ctx context.Context, orderID int64, target model.OrderStatus) (*model.Order, error) {
	o, found, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	if !o.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, o.Status, target)
	}
	return o, nil
}

func (s *Service) publish(ctx context.Context, eventType string, orderID int64, payload any) {
	if err := s.producer.Publish(ctx, eventType, strconv.FormatInt(orderID, 10), payload); err != nil {
		log.Printf("[Order] Failed to publish %s for order %d: %v", eventType, orderID, err)
	}
}
