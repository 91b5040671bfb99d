package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medimart-backend/internal/models"
)

func TestPublicCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)
	product := ts.seedProduct(t, "Thermometer", 400, 10)

	rec := ts.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode[[]models.Product](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "Thermometer", products[0].Name)

	rec = ts.do(t, http.MethodGet, "/api/products/"+product.ID.Hex(), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/products/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]models.Category](t, rec)
	require.Len(t, categories, 1)
	assert.Equal(t, "thermometer-category", categories[0].Slug)
}

func TestAdminProductCRUD(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.signup(t, "user@example.com", models.RoleUser)
	_, adminToken := ts.signup(t, "admin@example.com", models.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/admin/categories", adminToken, map[string]any{
		"name": "First Aid", "featured": true, "displayOrder": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[models.Category](t, rec)
	assert.Equal(t, "first-aid", category.Slug)

	// non-admin is rejected before the handler runs
	rec = ts.do(t, http.MethodPost, "/api/admin/products", userToken, map[string]any{
		"name": "Bandages", "price": 75, "mrp": 100, "stock": 10, "categoryId": category.ID.Hex(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/admin/products", adminToken, map[string]any{
		"name": "Bandages", "price": 75, "mrp": 100, "stock": 10, "categoryId": category.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	product := decode[models.Product](t, rec)
	assert.Equal(t, 25, product.Discount)

	// category with products cannot be deleted
	rec = ts.do(t, http.MethodDelete, "/api/admin/categories/"+category.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/admin/products/"+product.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/admin/categories/"+category.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddReviewEndpoint(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.signup(t, "alice@example.com", models.RoleUser)
	_, bobToken := ts.signup(t, "bob@example.com", models.RoleUser)
	product := ts.seedProduct(t, "Oximeter", 1200, 5)
	path := fmt.Sprintf("/api/products/%s/reviews", product.ID.Hex())

	rec := ts.do(t, http.MethodPost, path, aliceToken, map[string]any{"rating": 5, "comment": "Accurate"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, path, bobToken, map[string]any{"rating": 4, "comment": "Decent"})
	require.Equal(t, http.StatusCreated, rec.Code)
	updated := decode[models.Product](t, rec)
	assert.Equal(t, 4.5, updated.Rating)

	// duplicate reviewer
	rec = ts.do(t, http.MethodPost, path, aliceToken, map[string]any{"rating": 3, "comment": "Changed my mind"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// out-of-range rating
	rec = ts.do(t, http.MethodPost, path, bobToken, map[string]any{"rating": 9, "comment": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	ts := newTestServer(t)
	user, userToken := ts.signup(t, "user@example.com", models.RoleUser)
	_, adminToken := ts.signup(t, "admin@example.com", models.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/admin/notifications", adminToken, map[string]any{
		"title": "Stock alert", "message": "N95 masks back in stock", "audience": "all",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/admin/notifications", adminToken, map[string]any{
		"title": "Just for you", "message": "Your order shipped", "audience": "user", "userId": user.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	targeted := decode[models.Notification](t, rec)

	rec = ts.do(t, http.MethodGet, "/api/notifications", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]struct {
		models.Notification
		Read bool `json:"read"`
	}](t, rec)
	require.Len(t, list, 2)

	rec = ts.do(t, http.MethodPatch, "/api/notifications/"+targeted.ID.Hex()+"/read", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// publishing requires the admin role
	rec = ts.do(t, http.MethodPost, "/api/admin/notifications", userToken, map[string]any{
		"title": "x", "message": "y", "audience": "all",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.signup(t, "user@example.com", models.RoleUser)
	_, adminToken := ts.signup(t, "admin@example.com", models.RoleAdmin)
	product := ts.seedProduct(t, "Thermometer", 100, 50)

	rec := ts.do(t, http.MethodPost, "/api/orders", userToken, orderBody(product.ID, 2))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/admin/analytics/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalOrders":1`)
	assert.Contains(t, rec.Body.String(), `"revenue":200`)

	rec = ts.do(t, http.MethodGet, "/api/admin/analytics/top-products?limit=3", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thermometer")

	rec = ts.do(t, http.MethodGet, "/api/admin/analytics/summary", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
