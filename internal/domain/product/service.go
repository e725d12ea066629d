package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/model"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSKUExists         = errors.New("sku already exists")
	ErrInvalidPrice      = errors.New("price must be greater than 0")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Service holds the business rules for products. Stock is also mutated here
// on behalf of the order lifecycle via AdjustStock.
type Service struct {
	store store.ProductStore
}

func NewService(store store.ProductStore) *Service {
	return &Service{store: store}
}

func (s *Service) Add(ctx context.Context, name, sku string, price decimal.Decimal, stock int, category string) (*model.Product, error) {
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	_, exists, err := s.store.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrSKUExists, sku)
	}
	return s.store.Create(ctx, &model.Product{
		Name:     name,
		SKU:      sku,
		Price:    price,
		Stock:    stock,
		Category: category,
	})
}

// Update applies only the supplied fields.
func (s *Service) Update(ctx context.Context, id int64, fields store.ProductUpdate) (*model.Product, error) {
	if fields.Price != nil && !fields.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if _, found, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return s.store.Update(ctx, id, fields)
}

// Delete removes the product and returns the prior row. Order items that
// reference the product keep their snapshots; no referential check is made.
func (s *Service) Delete(ctx context.Context, id int64) (*model.Product, error) {
	existing, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]*model.Product, error) {
	return s.store.List(ctx, limit)
}

// AdjustStock changes the stock level by delta (negative to deduct). The
// resulting stock is never allowed below zero.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*model.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	newStock := p.Stock + delta
	if newStock < 0 {
		return nil, fmt.Errorf("%w: not enough stock for %s (available: %d)", ErrInsufficientStock, p.Name, p.Stock)
	}
	return s.store.Update(ctx, id, store.ProductUpdate{Stock: &newStock})
}
