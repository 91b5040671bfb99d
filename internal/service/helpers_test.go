package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/config"
	"medimart-backend/internal/models"
	"medimart-backend/internal/store"
)

type testEnv struct {
	stores        *store.Stores
	accounts      *AccountService
	catalog       *CatalogService
	orders        *OrderService
	notifications *NotificationService
	analytics     *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stores := store.NewMemoryStores()
	jwtCfg := &config.JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	return &testEnv{
		stores:        stores,
		accounts:      NewAccountService(stores.Users, jwtCfg),
		catalog:       NewCatalogService(stores.Products, stores.Categories, stores.Users),
		orders:        NewOrderService(stores.Orders, stores.Products, stores.Users),
		notifications: NewNotificationService(stores.Notifications, stores.Users),
		analytics:     NewAnalyticsService(stores.Orders, stores.Products, stores.Users),
	}
}

func (e *testEnv) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := e.accounts.Register(context.Background(), RegisterInput{
		Name: name, Email: email, Password: "password1",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := e.catalog.CreateCategory(context.Background(), CategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func (e *testEnv) createProduct(t *testing.T, name string, price, mrp float64, stock int, categoryID primitive.ObjectID) *models.Product {
	t.Helper()
	product, err := e.catalog.CreateProduct(context.Background(), ProductInput{
		Name:       name,
		Price:      price,
		MRP:        mrp,
		Stock:      stock,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) currentStock(t *testing.T, id primitive.ObjectID) int {
	t.Helper()
	product, err := e.stores.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return product.Stock
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Name:       "Asha Verma",
		Street:     "12 Hospital Road",
		City:       "Pune",
		State:      "MH",
		PostalCode: "411001",
		Phone:      "9876543210",
	}
}
