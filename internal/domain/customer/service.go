package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/model"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrHasOrders        = errors.New("cannot delete customer with existing orders")
)

// Service holds the business rules for customers. Deletion consults the
// order store: a customer referenced by any order cannot be removed.
type Service struct {
	store  store.CustomerStore
	orders store.OrderStore
}

func NewService(store store.CustomerStore, orders store.OrderStore) *Service {
	return &Service{store: store, orders: orders}
}

func (s *Service) Add(ctx context.Context, name, email, phone, city string) (*model.Customer, error) {
	_, exists, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrEmailExists, email)
	}
	return s.store.Create(ctx, &model.Customer{
		Name:  name,
		Email: email,
		Phone: phone,
		City:  city,
	})
}

// Update applies a partial update of phone and/or city.
func (s *Service) Update(ctx context.Context, id int64, fields store.CustomerUpdate) (*model.Customer, error) {
	if _, found, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	return s.store.Update(ctx, id, fields)
}

// Delete removes the customer and returns the prior row. It fails while any
// order, of any status, still references the customer.
func (s *Service) Delete(ctx context.Context, id int64) (*model.Customer, error) {
	existing, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	count, err := s.orders.CountOrdersByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: customer %d has %d order(s)", ErrHasOrders, id, count)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	c, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]*model.Customer, error) {
	return s.store.List(ctx, limit)
}

// Search filters by exact email and/or city with AND semantics; no filter
// returns every customer.
func (s *Service) Search(ctx context.Context, email, city string) ([]*model.Customer, error) {
	return s.store.Search(ctx, email, city)
}
