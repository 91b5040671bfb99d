package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/auth"
	"medimart-backend/internal/config"
	"medimart-backend/internal/models"
	"medimart-backend/internal/service"
	"medimart-backend/internal/store"
)

type testServer struct {
	router *gin.Engine
	stores *store.Stores
	cfg    *config.Config

	accounts *service.AccountService
	catalog  *service.CatalogService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:          config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Upload:       config.UploadConfig{Dir: t.TempDir(), MaxSizeBytes: 1 << 20},
		CORSOrigins:  []string{"http://localhost:3000"},
		StoreBackend: "memory",
		Debug:        true,
	}
	stores := store.NewMemoryStores()

	accounts := service.NewAccountService(stores.Users, &cfg.JWT)
	catalog := service.NewCatalogService(stores.Products, stores.Categories, stores.Users)
	orders := service.NewOrderService(stores.Orders, stores.Products, stores.Users)
	notifications := service.NewNotificationService(stores.Notifications, stores.Users)
	analytics := service.NewAnalyticsService(stores.Orders, stores.Products, stores.Users)

	srv := New(cfg, accounts, catalog, orders, notifications, analytics)
	return &testServer{
		router:   srv.Router(),
		stores:   stores,
		cfg:      cfg,
		accounts: accounts,
		catalog:  catalog,
	}
}

// signup registers a user with the given role and returns it with a
// valid bearer token.
func (ts *testServer) signup(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	user, err := ts.accounts.Register(context.Background(), service.RegisterInput{
		Name: "Test User", Email: email, Password: "password1",
	})
	require.NoError(t, err)
	if role != models.RoleUser {
		user.Role = role
		require.NoError(t, ts.stores.Users.Update(context.Background(), user))
	}
	token, err := auth.GenerateToken(&ts.cfg.JWT, user.ID.Hex(), role)
	require.NoError(t, err)
	return user, token
}

func (ts *testServer) seedProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	category, err := ts.catalog.CreateCategory(context.Background(), service.CategoryInput{Name: name + " Category"})
	require.NoError(t, err)
	product, err := ts.catalog.CreateProduct(context.Background(), service.ProductInput{
		Name: name, Price: price, Stock: stock, CategoryID: category.ID,
	})
	require.NoError(t, err)
	return product
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func orderBody(productID primitive.ObjectID, quantity int) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product": productID.Hex(), "quantity": quantity},
		},
		"shippingAddress": map[string]any{
			"name":       "Asha Verma",
			"street":     "12 Hospital Road",
			"city":       "Pune",
			"state":      "MH",
			"postalCode": "411001",
			"phone":      "9876543210",
		},
		"paymentMethod": "cod",
	}
}
