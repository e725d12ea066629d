package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/retail-cli/internal/infrastructure/store"
	"github.com/example/retail-cli/internal/infrastructure/store/mocks"
	"github.com/example/retail-cli/internal/model"
)

func newTestService() (*Service, *mocks.MockProductStore) {
	productStore := mocks.NewMockProductStore()
	return NewService(productStore), productStore
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestService_Add_Success(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	p, err := service.Add(ctx, "Keyboard", "KB-1", dec("49.99"), 10, "peripherals")

	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Keyboard", p.Name)
	assert.Equal(t, "KB-1", p.SKU)
	assert.True(t, p.Price.Equal(dec("49.99")))
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, "peripherals", p.Category)
	assert.Len(t, productStore.CreateCalls, 1)
}

func TestService_Add_ZeroPrice(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	p, err := service.Add(ctx, "Keyboard", "KB-1", decimal.Zero, 10, "")

	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Nil(t, p)
	assert.Empty(t, productStore.CreateCalls)
}

func TestService_Add_NegativePrice(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	p, err := service.Add(ctx, "Keyboard", "KB-1", dec("-1"), 10, "")

	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Nil(t, p)
	assert.Empty(t, productStore.CreateCalls)
}

func TestService_Add_DuplicateSKU(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	productStore.Seed(model.Product{Name: "Keyboard", SKU: "KB-1", Price: dec("49.99"), Stock: 10})

	p, err := service.Add(ctx, "Other keyboard", "KB-1", dec("59.99"), 5, "")

	assert.ErrorIs(t, err, ErrSKUExists)
	assert.Nil(t, p)
	// Store unchanged: only the seeded row remains.
	products, listErr := productStore.List(ctx, 100)
	require.NoError(t, listErr)
	assert.Len(t, products, 1)
}

func TestService_Update_PartialFields(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	seeded := productStore.Seed(model.Product{Name: "Keyboard", SKU: "KB-1", Price: dec("49.99"), Stock: 10})

	newName := "Mechanical keyboard"
	updated, err := service.Update(ctx, seeded.ID, store.ProductUpdate{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Mechanical keyboard", updated.Name)
	assert.Equal(t, "KB-1", updated.SKU)
	assert.True(t, updated.Price.Equal(dec("49.99")))
	assert.Equal(t, 10, updated.Stock)
}

func TestService_Update_InvalidPrice(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	seeded := productStore.Seed(model.Product{Name: "Keyboard", SKU: "KB-1", Price: dec("49.99"), Stock: 10})

	badPrice := decimal.Zero
	_, err := service.Update(ctx, seeded.ID, store.ProductUpdate{Price: &badPrice})

	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Empty(t, productStore.UpdateCalls)
}

func TestService_Update_NotFound(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	newName := "Nothing"
	_, err := service.Update(ctx, 42, store.ProductUpdate{Name: &newName})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_Delete_ReturnsPriorRow(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	seeded := productStore.Seed(model.Product{Name: "Keyboard", SKU: "KB-1", Price: dec("49.99"), Stock: 10})

	deleted, err := service.Delete(ctx, seeded.ID)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, deleted.ID)
	assert.Equal(t, "Keyboard", deleted.Name)

	_, err = service.GetByID(ctx, seeded.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_Delete_NotFound(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Delete(ctx, 42)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_GetByID_NotFound(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.GetByID(ctx, 42)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_List_InsertionOrder(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	productStore.Seed(model.Product{Name: "First", SKU: "A", Price: dec("1"), Stock: 1})
	productStore.Seed(model.Product{Name: "Second", SKU: "B", Price: dec("2"), Stock: 2})
	productStore.Seed(model.Product{Name: "Third", SKU: "C", Price: dec("3"), Stock: 3})

	products, err := service.List(ctx, 2)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "First", products[0].Name)
	assert.Equal(t, "Second", products[1].Name)
}

func TestService_AdjustStock_Deduct(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	seeded := productStore.Seed(model.Product{Name: "Keyboard", SKU: "KB-1", Price: dec("49.99"), Stock: 10})

	updated, err := service.AdjustStock(ctx, seeded.ID, -4)

	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)
}

func TestService_AdjustStock_NeverNegative(t *testing.T) {
	service, productStore := newTestService()
	ctx := context.Background()

	seeded := productStore.Seed(model.Product{Name: "Keyboard", SKU: "KB-1", Price: dec("49.99"), Stock: 3})

	_, err := service.AdjustStock(ctx, seeded.ID, -4)

	assert.ErrorIs(t, err, ErrInsufficientStock)

	current, getErr := service.GetByID(ctx, seeded.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 3, current.Stock)
}
