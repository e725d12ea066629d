package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/infrastructure/store"
)

// ProductSales is one row of the top-selling products report.
type ProductSales struct {
	Product      string `json:"product"`
	QuantitySold int    `json:"quantity_sold"`
}

// CustomerOrders is one row of the per-customer order count report.
type CustomerOrders struct {
	Customer    string `json:"customer"`
	OrdersCount int    `json:"orders_count"`
}

// Service produces read-only aggregations over existing rows. It works
// directly on the stores; nothing here mutates state.
type Service struct {
	orders    store.OrderStore
	products  store.ProductStore
	customers store.CustomerStore
}

func NewService(orders store.OrderStore, products store.ProductStore, customers store.CustomerStore) *Service {
	return &Service{orders: orders, products: products, customers: customers}
}

// TopSellingProducts returns the topN products by total quantity across all
// order items.
func (s *Service) TopSellingProducts(ctx context.Context, topN int) ([]ProductSales, error) {
	items, err := s.orders.ListAllOrderItems(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int)
	for _, item := range items {
		counts[item.ProductID] += item.Quantity
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if topN < len(ids) {
		ids = ids[:topN]
	}

	result := make([]ProductSales, 0, len(ids))
	for _, id := range ids {
		name := fmt.Sprintf("product %d", id) // product may have been deleted
		if p, found, err := s.products.GetByID(ctx, id); err != nil {
			return nil, err
		} else if found {
			name = p.Name
		}
		result = append(result, ProductSales{Product: name, QuantitySold: counts[id]})
	}
	return result, nil
}

// RevenueSince sums the totals of all orders created at or after the given
// time, regardless of status.
func (s *Service) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	orders, err := s.orders.ListAllOrders(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range orders {
		if !o.CreatedAt.Before(since) {
			total = total.Add(o.TotalAmount)
		}
	}
	return total, nil
}

// RevenueLastMonth sums order totals over the trailing 30 days.
func (s *Service) RevenueLastMonth(ctx context.Context) (decimal.Decimal, error) {
	return s.RevenueSince(ctx, time.Now().Add(-30*24*time.Hour))
}

// OrdersByCustomer returns each customer's order count.
func (s *Service) OrdersByCustomer(ctx context.Context) ([]CustomerOrders, error) {
	customers, err := s.customers.List(ctx, 100)
	if err != nil {
		return nil, err
	}
	result := make([]CustomerOrders, 0, len(customers))
	for _, c := range customers {
		count, err := s.orders.CountOrdersByCustomer(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CustomerOrders{Customer: c.Name, OrdersCount: count})
	}
	return result, nil
}

// FrequentCustomers returns customers with strictly more than minOrders
// orders.
func (s *Service) FrequentCustomers(ctx context.Context, minOrders int) ([]CustomerOrders, error) {
	all, err := s.OrdersByCustomer(ctx)
	if err != nil {
		return nil, err
	}
	frequent := make([]CustomerOrders, 0)
	for _, c := range all {
		if c.OrdersCount > minOrders {
			frequent = append(frequent, c)
		}
	}
	return frequent, nil
}
