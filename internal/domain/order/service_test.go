package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/retail-cli/internal/domain/customer"
	"github.com/example/retail-cli/internal/domain/product"
	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/infrastructure/store/mocks"
	"github.com/example/retail-cli/internal/model"
)

type testEnv struct {
	service       *Service
	products      *product.Service
	productStore  *mocks.MockProductStore
	customerStore *mocks.MockCustomerStore
	orderStore    *mocks.MockOrderStore
}

func newTestEnv() *testEnv {
	productStore := mocks.NewMockProductStore()
	customerStore := mocks.NewMockCustomerStore()
	orderStore := mocks.NewMockOrderStore()

	products := product.NewService(productStore)
	customers := customer.NewService(customerStore, orderStore)

	return &testEnv{
		service:       NewService(orderStore, customers, products, nil),
		products:      products,
		productStore:  productStore,
		customerStore: customerStore,
		orderStore:    orderStore,
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestService_Create_Success(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})
	prod := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10"), Stock: 5})

	details, err := env.service.Create(ctx, cust.ID, []ItemRequest{{ProductID: prod.ID, Quantity: 2}})

	require.NoError(t, err)
	assert.True(t, details.Order.TotalAmount.Equal(dec("20")))
	assert.Equal(t, model.OrderPlaced, details.Order.Status)
	assert.Equal(t, cust.ID, details.Order.CustomerID)
	assert.Equal(t, "A", details.Customer.Name)
	require.Len(t, details.Items, 1)
	assert.Equal(t, prod.ID, details.Items[0].ProductID)
	assert.Equal(t, 2, details.Items[0].Quantity)
	assert.True(t, details.Items[0].Price.Equal(dec("10")))

	updated, err := env.products.GetByID(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)
}

func TestService_Create_MultipleItems(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})
	p1 := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10.50"), Stock: 5})
	p2 := env.productStore.Seed(model.Product{Name: "Gadget", SKU: "S2", Price: dec("3.25"), Stock: 8})

	details, err := env.service.Create(ctx, cust.ID, []ItemRequest{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 4},
	})

	require.NoError(t, err)
	// 2*10.50 + 4*3.25 = 34.00
	assert.True(t, details.Order.TotalAmount.Equal(dec("34")))
	require.Len(t, details.Items, 2)

	u1, _ := env.products.GetByID(ctx, p1.ID)
	u2, _ := env.products.GetByID(ctx, p2.ID)
	assert.Equal(t, 3, u1.Stock)
	assert.Equal(t, 4, u2.Stock)
}

func TestService_Create_CustomerNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	prod := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10"), Stock: 5})

	_, err := env.service.Create(ctx, 42, []ItemRequest{{ProductID: prod.ID, Quantity: 1}})

	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	orders, _ := env.orderStore.ListAllOrders(ctx)
	assert.Empty(t, orders)
}

func TestService_Create_ProductNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})

	_, err := env.service.Create(ctx, cust.ID, []ItemRequest{{ProductID: 42, Quantity: 1}})

	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestService_Create_InsufficientStock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})
	p1 := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10"), Stock: 5})
	p2 := env.productStore.Seed(model.Product{Name: "Gadget", SKU: "S2", Price: dec("3"), Stock: 1})

	// Second item fails validation; nothing may have been written, including
	// the first item's stock.
	_, err := env.service.Create(ctx, cust.ID, []ItemRequest{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 3},
	})

	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Gadget")
	assert.Contains(t, err.Error(), "available: 1")

	u1, _ := env.products.GetByID(ctx, p1.ID)
	u2, _ := env.products.GetByID(ctx, p2.ID)
	assert.Equal(t, 5, u1.Stock)
	assert.Equal(t, 1, u2.Stock)

	orders, _ := env.orderStore.ListAllOrders(ctx)
	assert.Empty(t, orders)
}

func TestService_Create_SnapshotsPrice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})
	prod := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10"), Stock: 5})

	details, err := env.service.Create(ctx, cust.ID, []ItemRequest{{ProductID: prod.ID, Quantity: 2}})
	require.NoError(t, err)

	// A later price edit must not touch the snapshot or the total.
	newPrice := dec("99")
	_, err = env.products.Update(ctx, prod.ID, store.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	reloaded, err := env.service.GetDetails(ctx, details.Order.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Order.TotalAmount.Equal(dec("20")))
	assert.True(t, reloaded.Items[0].Price.Equal(dec("10")))
}

func TestService_Create_PartialFailureLeavesEarlierWrites(t *testing.T) {
	// The multi-step creation is not transactional: when a later item insert
	// fails, the order row and the earlier item's stock deduction remain.
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})
	p1 := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10"), Stock: 5})
	p2 := env.productStore.Seed(model.Product{Name: "Gadget", SKU: "S2", Price: dec("3"), Stock: 8})

	env.orderStore.CreateItemErr = errors.New("connection reset")
	env.orderStore.ItemErrAfter = 1

	_, err := env.service.Create(ctx, cust.ID, []ItemRequest{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	})
	require.Error(t, err)

	orders, _ := env.orderStore.ListAllOrders(ctx)
	assert.Len(t, orders, 1)

	u1, _ := env.products.GetByID(ctx, p1.ID)
	u2, _ := env.products.GetByID(ctx, p2.ID)
	assert.Equal(t, 3, u1.Stock) // deducted, never restored
	assert.Equal(t, 7, u2.Stock) // second deduction happened before the failed insert
}

func TestService_GetDetails_NotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.GetDetails(ctx, 42)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_Cancel_RestoresStock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})
	prod := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10"), Stock: 5})

	details, err := env.service.Create(ctx, cust.ID, []ItemRequest{{ProductID: prod.ID, Quantity: 2}})
	require.NoError(t, err)

	cancelled, err := env.service.Cancel(ctx, details.Order.ID)

	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, cancelled.Status)

	restored, _ := env.products.GetByID(ctx, prod.ID)
	assert.Equal(t, 5, restored.Stock)
}

func TestService_Cancel_NotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Cancel(ctx, 42)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_Cancel_CompletedOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	seeded := env.orderStore.SeedOrder(model.Order{CustomerID: 1, Status: model.OrderCompleted})

	_, err := env.service.Cancel(ctx, seeded.ID)

	assert.ErrorIs(t, err, ErrInvalidTransition)

	current, _, _ := env.orderStore.GetOrderByID(ctx, seeded.ID)
	assert.Equal(t, model.OrderCompleted, current.Status)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	seeded := env.orderStore.SeedOrder(model.Order{CustomerID: 1, Status: model.OrderCancelled})

	_, err := env.service.Cancel(ctx, seeded.ID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Complete_Success(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cust := env.customerStore.Seed(model.Customer{Name: "A", Email: "a@x.com", Phone: "1"})
	prod := env.productStore.Seed(model.Product{Name: "Widget", SKU: "S1", Price: dec("10"), Stock: 5})

	details, err := env.service.Create(ctx, cust.ID, []ItemRequest{{ProductID: prod.ID, Quantity: 2}})
	require.NoError(t, err)

	completed, err := env.service.Complete(ctx, details.Order.ID)

	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, completed.Status)

	// Completion has no stock effect.
	current, _ := env.products.GetByID(ctx, prod.ID)
	assert.Equal(t, 3, current.Stock)
}

func TestService_Complete_CancelledOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	seeded := env.orderStore.SeedOrder(model.Order{CustomerID: 1, Status: model.OrderCancelled})

	_, err := env.service.Complete(ctx, seeded.ID)

	assert.ErrorIs(t, err, ErrInvalidTransition)

	current, _, _ := env.orderStore.GetOrderByID(ctx, seeded.ID)
	assert.Equal(t, model.OrderCancelled, current.Status)
}

func TestService_Complete_NotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Complete(ctx, 42)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_ListByCustomer(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.orderStore.SeedOrder(model.Order{CustomerID: 1})
	env.orderStore.SeedOrder(model.Order{CustomerID: 1})
	env.orderStore.SeedOrder(model.Order{CustomerID: 2})

	orders, err := env.service.ListByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	// No existence check: an unknown customer yields an empty list.
	none, err := env.service.ListByCustomer(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}
